package main

import "github.com/scala-steward/daffodil-build/cmd/daffodil-build/internal"

func main() {
	internal.Execute()
}
