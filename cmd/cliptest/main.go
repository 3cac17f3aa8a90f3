//go:build ignore

// Checks that a user handle survives a trip through the system clipboard.
package main

import (
	"fmt"

	"github.com/zhubert/huddle/internal/clipboard"
)

func main() {
	if err := clipboard.Init(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	want := clipboard.EncodeUserHandle("alice@huddle.example")
	fmt.Println("Writing", want)
	if err := clipboard.WriteText(want); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	got, err := clipboard.ReadText()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	handle, ok := clipboard.DecodeUserHandle(got)
	if !ok {
		fmt.Printf("Clipboard holds %q, not a user handle\n", got)
		return
	}
	fmt.Println("Read back handle:", handle)
}
