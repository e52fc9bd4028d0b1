package main

import "taskpad/internal/app"

// @title        taskpad API
// @version      1.0
// @description  Passwordless email login and a personal task list.
// @BasePath     /
func main() {
	app.Run()
}
