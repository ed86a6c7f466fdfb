package api

func (s *Server) setupRoutes() {
	s.router.GET("/", s.healthHandler.MonitorInfo)
	s.router.GET("/health", s.healthHandler.HealthCheck)

	system := s.router.Group("/system")
	{
		system.POST("/start", s.systemHandler.StartMonitoring)
		system.POST("/stop", s.systemHandler.StopMonitoring)
		system.GET("/status", s.systemHandler.GetSystemStatus)
	}

	cameras := s.router.Group("/cameras")
	{
		cameras.GET("/:id/status", s.cameraHandler.GetCameraStatus)
		cameras.GET("/:id/frame", s.cameraHandler.GetLatestFrame)
		cameras.GET("/:id/mjpeg", s.cameraHandler.StreamMJPEG)
	}

	alerts := s.router.Group("/alerts")
	{
		alerts.GET("", s.alertsHandler.GetAlertsHistory)
		alerts.GET("/summary", s.alertsHandler.GetAlertsSummary)
		alerts.POST("/config", s.alertsHandler.UpdateAlertConfig)
	}
}
