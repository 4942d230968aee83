package main

import "github.com/smartstore/store-system/cmd"

// @title                      Store Management API
// @version                    1.0
// @description                Users, stores, products and customers behind HTTP Basic authentication.
// @BasePath                   /
// @securityDefinitions.basic  BasicAuth
func main() {
	cmd.Execute()
}
