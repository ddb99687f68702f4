// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-assistant/backend/internal/application/ml"
	"github.com/finance-assistant/backend/internal/application/nlp"
	"github.com/finance-assistant/backend/internal/application/usecase/auth"
	"github.com/finance-assistant/backend/internal/application/usecase/categorization"
	"github.com/finance-assistant/backend/internal/application/usecase/chat"
	"github.com/finance-assistant/backend/internal/application/usecase/ledger"
	"github.com/finance-assistant/backend/internal/domain/entity"
	"github.com/finance-assistant/backend/internal/infra/server/router"
	"github.com/finance-assistant/backend/internal/integration/adapters"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/controller"
	"github.com/finance-assistant/backend/internal/integration/entrypoint/middleware"
	"github.com/finance-assistant/backend/internal/integration/persistence"
	"github.com/finance-assistant/backend/internal/integration/persistence/model"
	"github.com/finance-assistant/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// The categorizer trains once for the whole suite; training is deterministic
// so every scenario sees the same model.
var (
	categorizerOnce sync.Once
	testCategorizer *ml.Categorizer
)

func sharedCategorizer() *ml.Categorizer {
	categorizerOnce.Do(func() {
		dir, err := os.MkdirTemp("", "categorizer-artifact")
		if err != nil {
			panic(err)
		}
		store := adapters.NewFileArtifactStore(filepath.Join(dir, "categorizer.json"))
		testCategorizer = ml.NewCategorizer(store)
		if err := testCategorizer.LoadOrTrain(); err != nil {
			panic("failed to train test categorizer: " + err.Error())
		}
	})
	return testCategorizer
}

type testContext struct {
	server      *httptest.Server
	client      *http.Client
	db          *mock.Db
	ledgerRepo  *persistence.LedgerRepository
	headers     map[string]string
	accessToken string

	currentUserID    uuid.UUID
	currentAccountID uuid.UUID
	conversationID   string

	response *response
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
		}
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)

	// Ledger setup steps
	ctx.Given(`^the user has an account named "([^"]*)"$`, test.theUserHasAnAccountNamed)
	ctx.Given(`^the account has an (income|expense) of "([^"]*)" described as "([^"]*)"$`, test.theAccountHasATransaction)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should contain "([^"]*)"$`, test.theResponseFieldShouldContain)
}

// before builds a fresh application stack for the scenario.
func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.currentAccountID = uuid.Nil
	t.conversationID = ""
	t.response = nil

	t.db = mock.NewDb(
		&model.UserModel{},
		&model.AccountModel{},
		&model.TransactionModel{},
	)

	userRepo := persistence.NewUserRepository(t.db.DbConn)
	t.ledgerRepo = persistence.NewLedgerRepository(t.db.DbConn)

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(testJWTSecret)
	conversationStore := adapters.NewRedisConversationStore(mock.NewRedis())
	tagger := adapters.NewGeminiTagger("")

	categorizer := sharedCategorizer()

	matcher := nlp.NewIntentMatcher(nlp.DefaultIntentTable())
	extractor := nlp.NewEntityExtractor(tagger)

	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	balancesUseCase := ledger.NewGetAccountBalancesUseCase(t.ledgerRepo)
	breakdownUseCase := ledger.NewGetCategoryBreakdownUseCase(t.ledgerRepo)
	netFlowUseCase := ledger.NewGetNetFlowUseCase(t.ledgerRepo)
	searchUseCase := ledger.NewSearchTransactionsUseCase(t.ledgerRepo)
	trendUseCase := ledger.NewGetMonthlyTrendUseCase(t.ledgerRepo)
	summaryUseCase := ledger.NewGetSummaryUseCase(t.ledgerRepo, netFlowUseCase, breakdownUseCase, trendUseCase)

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

	categorizeUseCase := categorization.NewCategorizeTransactionUseCase(categorizer)
	retrainUseCase := categorization.NewRetrainModelUseCase(categorizer, t.ledgerRepo)

	healthController := controller.NewHealthController(func() bool { return true })
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
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		chatController,
		categorizationController,
		transactionController,
		authMiddleware,
	)
	engine := r.Setup("test")
	t.server = httptest.NewServer(engine)
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return errors.New("test server is not running")
	}
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	passwordService := adapters.NewPasswordService()
	hash, err := passwordService.HashPassword(password)
	if err != nil {
		return err
	}

	user := entity.NewUser(email, hash, "Test User")
	t.currentUserID = user.ID

	return t.db.DbConn.Create(model.UserFromEntity(user)).Error
}

func (t *testContext) iAmLoggedInAs(email string) error {
	var userModel model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&userModel).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}
	t.currentUserID = userModel.ID

	tokenService := adapters.NewTokenService(testJWTSecret)
	token, err := tokenService.GenerateAccessToken(context.Background(), userModel.ID, email)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theUserHasAnAccountNamed(name string) error {
	account := entity.NewAccount(t.currentUserID, name, entity.AccountKindChecking)
	t.currentAccountID = account.ID
	return t.ledgerRepo.CreateAccount(context.Background(), account)
}

func (t *testContext) theAccountHasATransaction(kind, amount, description string) error {
	txType := entity.TransactionTypeExpense
	category := entity.CategoryShopping
	if kind == "income" {
		txType = entity.TransactionTypeIncome
		category = entity.CategorySalary
	}

	tx := entity.NewTransaction(
		t.currentAccountID,
		time.Now().UTC().AddDate(0, 0, -1),
		description,
		"",
		decimal.RequireFromString(amount),
		txType,
		category,
	)
	return t.ledgerRepo.CreateTransaction(context.Background(), tx)
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	return strings.ReplaceAll(content, "{{conversation_id}}", t.conversationID)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	url := t.server.URL + path

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody

		if id, ok := responseBody["conversation_id"].(string); ok && id != "" {
			t.conversationID = id
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.fieldValue(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.fieldValue(field)
	return err
}

func (t *testContext) theResponseFieldShouldContain(field, expected string) error {
	value, err := t.fieldValue(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if !strings.Contains(actualValue, expected) {
		return fmt.Errorf("field '%s' expected to contain '%s', got '%s'", field, expected, actualValue)
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) fieldValue(dotSeparatedField string) (any, error) {
	body, err := t.responseObject()
	if err != nil {
		return nil, err
	}

	var field any = body
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		switch current := field.(type) {
		case map[string]any:
			var ok bool
			field, ok = current[currentField]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response: %v", dotSeparatedField, body)
			}
		case []any:
			index, err := strconv.Atoi(currentField)
			if err != nil || index < 0 || index >= len(current) {
				return nil, fmt.Errorf("field '%s' not found in response: %v", dotSeparatedField, body)
			}
			field = current[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response: %v", dotSeparatedField, body)
		}
	}
	return field, nil
}
