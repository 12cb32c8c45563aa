package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/nexuspump/nexuspump-api/docs"
	v1 "github.com/nexuspump/nexuspump-api/internal/api/handler/v1"
	"github.com/nexuspump/nexuspump-api/internal/api/middleware"
	"github.com/nexuspump/nexuspump-api/internal/config"
	"github.com/nexuspump/nexuspump-api/internal/repository"
	"github.com/nexuspump/nexuspump-api/internal/repository/dao"
	"github.com/nexuspump/nexuspump-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	svc, streamHandler, err := s.initRegistryService(db)
	if err != nil {
		return nil, err
	}

	// All handlers share one service so per-token locking actually serializes
	// writes regardless of which endpoint they arrive through.
	tokenHandler := v1.NewTokenHandler(svc)
	tradeHandler := v1.NewTradeHandler(svc)
	commentHandler := v1.NewCommentHandler(svc)
	s.MountHandlers(tokenHandler, tradeHandler, commentHandler, streamHandler)

	return s, nil
}

func (s *Server) initRegistryService(db *gorm.DB) (*service.RegistryService, *v1.StreamHandler, error) {
	params, err := s.Config.Market.CurveParams()
	if err != nil {
		return nil, nil, err
	}

	registryDAO := dao.NewRegistryDAO(db)
	repo := repository.NewRegistryRepository(registryDAO)

	streamHandler := v1.NewStreamHandler()
	go streamHandler.Run()

	svc := service.NewRegistryService(repo, streamHandler, params)

	return svc, streamHandler, nil
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(tokenHandler *v1.TokenHandler, tradeHandler *v1.TradeHandler, commentHandler *v1.CommentHandler, streamHandler *v1.StreamHandler) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.GET("/tokens", tokenHandler.HandleGetTokens)
		public.GET("/tokens/count", tokenHandler.HandleGetTokenCount)
		public.GET("/tokens/trending", tokenHandler.HandleGetTrendingTokens)
		public.GET("/tokens/:address", tokenHandler.HandleGetToken)
		public.GET("/tokens/:address/comments", commentHandler.HandleGetComments)
		public.GET("/tokens/:address/trades", tradeHandler.HandleGetTrades)
		public.GET("/tokens/:address/quotes/buy", tradeHandler.HandleQuoteBuy)
		public.GET("/tokens/:address/quotes/sell", tradeHandler.HandleQuoteSell)
		public.GET("/tokens/:address/quotes/swap", tradeHandler.HandleQuoteSwap)
		public.GET("/events/stream", streamHandler.HandleEventStream)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.POST("/tokens", tokenHandler.HandleCreateToken)
		authed.POST("/tokens/:address/buy", tradeHandler.HandleBuy)
		authed.POST("/tokens/:address/sell", tradeHandler.HandleSell)
		authed.POST("/tokens/:address/swap", tradeHandler.HandleSwap)
		authed.POST("/tokens/:address/comments", commentHandler.HandleAddComment)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "NexusPump API"
	docs.SwaggerInfo.Description = "Bonding-curve token launchpad with AMM graduation."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
