package main

import "soccermass/internal/app"

// @title           SoccerMASS Accounts API
// @version         1.0
// @description     Account registration, authentication and lifecycle for the SoccerMASS football-management game.
// @BasePath        /
func main() {
	app.Run()
}
