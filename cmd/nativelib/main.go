package main

import "github.com/goplus/nativelib/cmd/nativelib/internal"

func main() {
	internal.Execute()
}
