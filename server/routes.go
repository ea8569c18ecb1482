package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+s.callbackPath, ChainMiddleware(s.CallbackPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+s.FragmentPath(), ChainMiddleware(s.FragmentHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
}
