package main

import "github.com/antonkor/logboard/internal/app"

func main() {
	app.Run()
}
