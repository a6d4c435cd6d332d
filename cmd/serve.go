package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/interview-coach/internal/api"
	"github.com/spigell/interview-coach/internal/interview"
	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/secrets"
	"github.com/spigell/interview-coach/internal/storage"
)

const defaultListenAddr = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interview engine over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address (default :8080)")
}

func serve(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil || config.Server == nil {
		logger.Fatal("server configuration is required",
			zap.String("hint", "set the 'server' section in the configuration file"),
		)
	}

	token, err := secrets.Load(secrets.Source{
		Name: "api token",
		File: config.Server.TokenFile,
	})
	if err != nil {
		logger.Fatal("loading the api token",
			zap.Error(err),
			zap.String("hint", "set server.token-file or INTERVIEW_COACH_TOKEN_FILE"),
		)
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	store, err := storage.Open(dataDir)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err))
	}
	defer store.Close()

	settings := interviewSettings(config)
	assistant := prepareAssistant(ctx, config, logger)

	evaluator, err := interview.NewEvaluator(assistant, settings, logger)
	if err != nil {
		logger.Fatal("building the evaluator", zap.Error(err))
	}
	controller, err := interview.NewController(interview.NewGenerator(assistant, logger), evaluator, settings, logger)
	if err != nil {
		logger.Fatal("building the controller", zap.Error(err))
	}

	addr := cmd.Flag("listen").Value.String()
	if addr == "" {
		addr = config.Server.Listen
	}
	if addr == "" {
		addr = defaultListenAddr
	}

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: api.NewHandler(api.Deps{
			Controller: controller,
			Store:      store,
			Token:      token,
			Logger:     logger,
		}),
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("http server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}
