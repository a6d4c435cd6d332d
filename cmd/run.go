package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-coach/internal/ai"
	"github.com/spigell/interview-coach/internal/ai/gemini"
	"github.com/spigell/interview-coach/internal/candidate"
	"github.com/spigell/interview-coach/internal/document"
	"github.com/spigell/interview-coach/internal/interview"
	"github.com/spigell/interview-coach/internal/jobspec"
	"github.com/spigell/interview-coach/internal/logger"
	"github.com/spigell/interview-coach/internal/report"
	"github.com/spigell/interview-coach/internal/secrets"
	"github.com/spigell/interview-coach/internal/storage"
)

const (
	PromptSkip        = "Skip this question"
	PromptFinish      = "Finish the interview"
	PromptAnswerAgain = "Answer the question"
)

var blankAnswerPrompt = promptui.Select{
	Label: "Empty answer. What would you like to do?",
	Items: []string{PromptAnswerAgain, PromptSkip, PromptFinish},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive mock interview",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("jd", "", "", "path to the job description file (pdf, docx or txt)")
	runCmd.Flags().StringP("resume", "r", "", "path to the resume file (pdf, docx or txt)")
	runCmd.Flags().Bool("no-save", false, "do not persist the report to the local database")

	runCmd.MarkFlagRequired("jd")
}

// run is the interactive interview loop.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the interview-coach", zap.String("version", version))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	jdText := mustExtract(cmd.Flag("jd").Value.String(), "job description", logger)

	resumeText := ""
	if path := cmd.Flag("resume").Value.String(); path != "" {
		resumeText = mustExtract(path, "resume", logger)
	}

	profile := candidate.Analyze(resumeText)
	requirements := jobspec.Parse(jdText)

	logger.Info("parsed job description",
		zap.String("role", requirements.Role),
		zap.String("experience_level", string(requirements.ExperienceLevel)),
		zap.Strings("required_skills", requirements.RequiredSkills),
	)

	assistant := prepareAssistant(ctx, config, logger)
	settings := interviewSettings(config)

	evaluator, err := interview.NewEvaluator(assistant, settings, logger)
	if err != nil {
		logger.Fatal("building the evaluator", zap.Error(err))
	}
	controller, err := interview.NewController(interview.NewGenerator(assistant, logger), evaluator, settings, logger)
	if err != nil {
		logger.Fatal("building the controller", zap.Error(err))
	}

	session := controller.Start(ctx, uuid.New().String(), profile, requirements)

	fmt.Printf("\nMock interview for: %s (%s level)\n", requirements.Role, requirements.ExperienceLevel)
	fmt.Printf("Up to %d questions, %d seconds each. Submit an empty line to end your answer.\n",
		settings.MaxQuestions, int(settings.TimeLimitSeconds))

	reader := bufio.NewReader(os.Stdin)

	for !session.Terminated {
		q := *session.Current
		fmt.Printf("\nQuestion %d [%s / %s]\n%s\n\n> ", len(session.Questions)+1, q.Difficulty, q.Category, q.Text)

		started := time.Now()
		answer, err := readAnswer(reader)
		if err != nil {
			logger.Fatal("reading the answer", zap.Error(err))
		}
		taken := time.Since(started).Seconds()

		if strings.TrimSpace(answer) == "" {
			handleBlankAnswer(ctx, controller, session, logger)
			continue
		}

		if err := controller.Submit(ctx, session, answer, taken); err != nil {
			if errors.Is(err, interview.ErrSessionTerminated) {
				break
			}
			logger.Fatal("submitting the answer", zap.Error(err))
		}

		last := session.Evaluations[len(session.Evaluations)-1]
		fmt.Printf("\nScore: %.1f/100\nFeedback: %s\n", last.OverallScore, last.Feedback)
	}

	rep, err := report.FromSession(session)
	if err != nil {
		logger.Fatal("generating the report", zap.Error(err))
	}

	renderReport(rep)

	if cmd.Flag("no-save").Value.String() == "true" {
		return
	}
	if err := persistReport(config, session, rep); err != nil {
		logger.Warn("saving the report", zap.Error(err))
		return
	}
	logger.Info("report saved", zap.String("session_id", session.ID))
}

// handleBlankAnswer asks what to do with an empty answer.
func handleBlankAnswer(ctx context.Context, controller *interview.Controller, session *interview.Session, logger *zap.Logger) {
	_, action, err := blankAnswerPrompt.Run()
	if err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}

	switch action {
	case PromptSkip:
		if err := controller.Skip(ctx, session); err != nil && !errors.Is(err, interview.ErrSessionTerminated) {
			logger.Fatal("skipping the question", zap.Error(err))
		}
	case PromptFinish:
		err := controller.Finish(session)
		if errors.Is(err, interview.ErrTooFewQuestions) {
			fmt.Println(err.Error())
			return
		}
		if err != nil && !errors.Is(err, interview.ErrSessionTerminated) {
			logger.Fatal("finishing the interview", zap.Error(err))
		}
	}
}

// readAnswer collects lines until the first empty one.
func readAnswer(reader *bufio.Reader) (string, error) {
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil && len(lines) == 0 && line == "" {
			return "", err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	return strings.Join(lines, "\n"), nil
}

func mustExtract(path, kind string, logger *zap.Logger) string {
	text, err := document.ExtractFile(path)
	if err != nil {
		logger.Fatal(fmt.Sprintf("extracting the %s text", kind), zap.String("path", path), zap.Error(err))
	}
	return text
}

// prepareAssistant builds the AI collaborator. Any failure degrades to the
// deterministic engine with a warning rather than aborting.
func prepareAssistant(ctx context.Context, config *Config, logger *zap.Logger) ai.Interviewer {
	if config == nil || config.AI == nil || !config.AI.Enabled {
		return nil
	}

	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		logger.Warn("skipping AI assistance", zap.String("reason", "unsupported provider"), zap.String("provider", config.AI.Provider))
		return nil
	}
	if config.AI.Gemini == nil {
		logger.Warn("skipping AI assistance", zap.String("reason", "gemini configuration is missing"))
		return nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		logger.Warn("skipping AI assistance",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
		)
		return nil
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.AI.Gemini.Model, config.AI.Gemini.Timeout)
	if err != nil {
		logger.Warn("skipping AI assistance", zap.Error(err))
		return nil
	}

	return gemini.NewInterviewer(generator, logger, config.AI.Gemini.MaxLogLength)
}

func persistReport(config *Config, session *interview.Session, rep *report.Report) error {
	dataDir := "data"
	if config != nil && config.DataDir != "" {
		dataDir = config.DataDir
	}

	store, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	reportJSON, err := json.Marshal(rep)
	if err != nil {
		return err
	}

	return store.SaveInterview(storage.InterviewRecord{
		ID:              session.ID,
		CreatedAt:       time.Now(),
		Role:            session.Requirements.Role,
		ExperienceLevel: string(session.Requirements.ExperienceLevel),
		QuestionCount:   len(session.Questions),
		ReadinessScore:  rep.ReadinessScore,
		HiringIndicator: rep.HiringIndicator,
		EarlyTerminated: rep.EarlyTerminated,
		ReportJSON:      string(reportJSON),
	})
}

func renderReport(rep *report.Report) {
	fmt.Printf("\n==============================\n")
	fmt.Printf("Interview Report\n")
	fmt.Printf("==============================\n")
	fmt.Printf("Readiness score:  %.1f/100\n", rep.ReadinessScore)
	fmt.Printf("Hiring indicator: %s\n", rep.HiringIndicator)
	if rep.EarlyTerminated {
		fmt.Println("The interview ended early due to sustained low scores.")
	}

	if len(rep.PerformanceBySkill) > 0 {
		fmt.Println("\nPerformance by skill:")
		for _, s := range rep.PerformanceBySkill {
			fmt.Printf("  %-25s %.1f\n", s.Area, s.Score)
		}
	}

	fmt.Println("\nStrengths:")
	for _, s := range rep.Strengths {
		fmt.Printf("  - %s\n", s)
	}

	if len(rep.Weaknesses) > 0 {
		fmt.Println("\nAreas to improve:")
		for _, w := range rep.Weaknesses {
			fmt.Printf("  - %s\n", w)
		}
	}

	fmt.Println("\nActionable feedback:")
	for _, f := range rep.ActionableFeedback {
		fmt.Printf("  - %s\n", f)
	}
}
