package window

import "fmt"

func ExampleKaiser() {
	w, err := Kaiser(5, 8.6)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.4f %.4f %.4f %.4f %.4f\n", w[0], w[1], w[2], w[3], w[4])
	// Output:
	// 0.0013 0.3404 1.0000 0.3404 0.0013
}
