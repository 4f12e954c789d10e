package main

import "handwerk/portal_backend/internal/app"

func main() {
	app.Run()
}
