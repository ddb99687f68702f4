// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-assistant/backend/config"
	"github.com/finance-assistant/backend/internal/application/adapter"
	"github.com/finance-assistant/backend/internal/application/ml"
	"github.com/finance-assistant/backend/internal/application/nlp"
	"github.com/finance-assistant/backend/internal/application/usecase/auth"
	"github.com/finance-assistant/backend/internal/application/usecase/categorization"
	"github.com/finance-assistant/backend/internal/application/usecase/chat"
	"github.com/finance-assistant/backend/internal/application/usecase/ledger"
	"github.com/finance-assistant/backend/internal/infra/server/router"
	"github.com/finance-assistant/backend/internal/integration/adapters"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/controller"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/middleware"
	"github.com/finance-assistant/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	ledgerRepo := persistence.NewLedgerRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	artifactStore := adapters.NewFileArtifactStore(cfg.Model.ArtifactPath)
	tagger := adapters.NewGeminiTagger(cfg.Model.GeminiAPIKey)
	conversationStore := newConversationStore(&cfg.Redis)

	// Train or restore the categorization model before serving requests.
	categorizer := ml.NewCategorizer(artifactStore)
	if err := categorizer.LoadOrTrain(); err != nil {
		return nil, fmt.Errorf("failed to initialize categorization model: %w", err)
	}

	// Create NLP components
	matcher := nlp.NewIntentMatcher(nlp.DefaultIntentTable())
	extractor := nlp.NewEntityExtractor(tagger)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create ledger use cases
	balancesUseCase := ledger.NewGetAccountBalancesUseCase(ledgerRepo)
	breakdownUseCase := ledger.NewGetCategoryBreakdownUseCase(ledgerRepo)
	netFlowUseCase := ledger.NewGetNetFlowUseCase(ledgerRepo)
	searchUseCase := ledger.NewSearchTransactionsUseCase(ledgerRepo)
	trendUseCase := ledger.NewGetMonthlyTrendUseCase(ledgerRepo)
	summaryUseCase := ledger.NewGetSummaryUseCase(ledgerRepo, netFlowUseCase, breakdownUseCase, trendUseCase)

	// Create chat use cases
	processMessageUseCase := chat.NewProcessMessageUseCase(
		matcher,
		extractor,
		conversationStore,
		balancesUseCase,
		breakdownUseCase,
		netFlowUseCase,
		searchUseCase,
	)
	historyUseCase := chat.NewGetConversationHistoryUseCase(conversationStore)
	deleteConversationUseCase := chat.NewDeleteConversationUseCase(conversationStore)
	suggestionsUseCase := chat.NewGetSuggestionsUseCase()

	// Create categorization use cases
	categorizeUseCase := categorization.NewCategorizeTransactionUseCase(categorizer)
	retrainUseCase := categorization.NewRetrainModelUseCase(categorizer, ledgerRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(registerUseCase, loginUseCase)

	chatController := controller.NewChatController(
		processMessageUseCase,
		historyUseCase,
		deleteConversationUseCase,
		suggestionsUseCase,
	)

	categorizationController := controller.NewCategorizationController(
		categorizeUseCase,
		retrainUseCase,
	)

	transactionController := controller.NewTransactionController(summaryUseCase)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		chatController,
		categorizationController,
		transactionController,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}, nil
}

// newConversationStore connects to Redis for conversation history. A failed
// connection setup yields a nil store; the chat still answers, it just keeps
// no history.
func newConversationStore(cfg *config.RedisConfig) adapter.ConversationStore {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		slog.Warn("Invalid Redis URL, conversation history disabled", "error", err)
		return nil
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DB = cfg.DB

	return adapters.NewRedisConversationStore(redis.NewClient(opts))
}
