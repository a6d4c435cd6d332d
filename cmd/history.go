package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/storage"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past interview reports",
	Run: func(cmd *cobra.Command, _ []string) {
		history(cmd)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of interviews to show")
}

func history(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	dataDir := "data"
	if config != nil && config.DataDir != "" {
		dataDir = config.DataDir
	}

	store, err := storage.Open(dataDir)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err))
	}
	defer store.Close()

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil || limit <= 0 {
		limit = 20
	}

	records, err := store.ListInterviews(limit)
	if err != nil {
		logger.Fatal("listing interviews", zap.Error(err))
	}

	if len(records) == 0 {
		fmt.Println("No interviews recorded yet.")
		return
	}

	for _, r := range records {
		early := ""
		if r.EarlyTerminated {
			early = " (ended early)"
		}
		fmt.Printf("%s  %s  %-30s %2d questions  %.1f/100  %s%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.ID[:8], r.Role,
			r.QuestionCount, r.ReadinessScore, r.HiringIndicator, early,
		)
	}
}
