package main

import (
	"github.com/Aashish23092/das-field-extraction/client"
	"github.com/Aashish23092/das-field-extraction/config"
	"github.com/Aashish23092/das-field-extraction/handler"
	"github.com/Aashish23092/das-field-extraction/service"
	"github.com/Aashish23092/das-field-extraction/utils/das"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguage, logger)
	defer tesseractClient.Close()

	pdfProcessor := service.NewPDFProcessor()

	extractorOpts := []das.Option{}
	if cfg.TraceExtraction {
		extractorOpts = append(extractorOpts, das.WithTracer(service.NewZapTracer(logger)))
	}

	dasService := service.NewDASService(
		tesseractClient,
		pdfProcessor,
		logger,
		service.WithBarcodeDecoder(client.NewBarcodeReader()),
		service.WithExtractor(das.NewExtractor(extractorOpts...)),
		service.WithRawText(cfg.IncludeRawText),
	)

	dasHandler := handler.NewDASHandler(dasService, cfg.MaxFileSize, logger)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "DAS Field Extraction",
		})
	})

	dasHandler.Register(router.Group("/api/v1"))

	logger.Info("starting DAS field extraction service", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
