package main

import "eventmanagement/cmd/api/cmd"

// @title Event Management API
// @version 1.0
// @description Events, venues, performers and user bookmarks.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cmd.Execute()
}
