package server

// routes wires every endpoint. The JSON API lives under /api; the websocket
// feed is at /ws.
func (s *Server) routes() {
	api := s.engine.Group("/api")
	{
		api.POST("/scene", s.handleGenerate)
		api.GET("/scene", s.handleScene)
		api.GET("/scene/graph", s.handleGraph)
		api.GET("/library/models", s.handleModels)
		api.GET("/library/textures", s.handleTextures)
		api.GET("/history", s.handleHistory)
		api.GET("/health", s.handleHealth)
	}
	s.engine.GET("/ws", s.handleWS)
}
