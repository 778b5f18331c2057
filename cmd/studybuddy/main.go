// Command studybuddy turns course material into a study guide.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/studybuddy/internal/adapters/driven/ai"
	"github.com/custodia-labs/studybuddy/internal/adapters/driven/config/file"
	"github.com/custodia-labs/studybuddy/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/studybuddy/internal/adapters/driving/cli"
	"github.com/custodia-labs/studybuddy/internal/core/domain"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driven"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driving"
	"github.com/custodia-labs/studybuddy/internal/core/services"
	"github.com/custodia-labs/studybuddy/internal/extractors/docx"
	"github.com/custodia-labs/studybuddy/internal/extractors/markdown"
	"github.com/custodia-labs/studybuddy/internal/extractors/pdf"
	"github.com/custodia-labs/studybuddy/internal/extractors/plaintext"
	"github.com/custodia-labs/studybuddy/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", domain.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var configStore driven.ConfigStore
	if store, err := file.NewConfigStore(""); err != nil {
		// A read-only home still allows environment-only configuration.
		logger.Warn("config file unavailable, settings will not persist: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = store
	}

	var promptStore driven.PromptStore
	if store, err := file.NewPromptStore(""); err != nil {
		promptStore = memory.NewPromptStore(map[string]string{
			driven.PromptStudyGuide: driven.DefaultStudyGuidePrompt,
		})
	} else {
		promptStore = store
	}

	settings := services.NewSettingsService(configStore, ai.NewConfigValidator())
	extraction := services.NewExtractionService(services.NewExtractorRegistry(
		plaintext.New(),
		markdown.New(),
		docx.New(),
		pdf.New(),
	))

	cli.SetServices(cli.Services{
		Extraction: extraction,
		Settings:   settings,
		NewSession: func(ctx context.Context) (driving.Session, error) {
			s, err := settings.Get()
			if err != nil {
				return nil, err
			}
			model, err := ai.CreateModel(ctx, &s.LLM)
			if err != nil {
				return nil, err
			}
			logger.Debug("model: %s (%s)", model.ModelName(), s.LLM.Provider)

			generator := services.NewStudyGuideService(model, s.Generation.MaxChars)
			generator.SetPromptStore(promptStore)
			return services.NewSession(extraction, generator), nil
		},
	})

	return cli.Execute(ctx)
}
