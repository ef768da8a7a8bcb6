package adminapi

// InitRouter registers every admin API route on the web server.
func InitRouter() {
	registerProductRoutes()
	registerOrderRoutes()
	registerNotificationRoutes()
}
