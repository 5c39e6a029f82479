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
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/creator-ledger/backend/config"
	"github.com/creator-ledger/backend/internal/application/usecase/auth"
	"github.com/creator-ledger/backend/internal/application/usecase/dashboard"
	"github.com/creator-ledger/backend/internal/application/usecase/expense"
	"github.com/creator-ledger/backend/internal/application/usecase/platform"
	"github.com/creator-ledger/backend/internal/application/usecase/report"
	"github.com/creator-ledger/backend/internal/application/usecase/transaction"
	"github.com/creator-ledger/backend/internal/domain/entity"
	"github.com/creator-ledger/backend/internal/infra/server/router"
	"github.com/creator-ledger/backend/internal/integration/adapters"
	"github.com/creator-ledger/backend/internal/integration/cache"
	"github.com/creator-ledger/backend/internal/integration/email"
	"github.com/creator-ledger/backend/internal/integration/email/templates"
	"github.com/creator-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/creator-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/creator-ledger/backend/internal/integration/persistence"
	"github.com/creator-ledger/backend/internal/integration/persistence/model"
	"github.com/creator-ledger/backend/test/integration/mock"
)

const (
	testJWTSecret  = "test-jwt-secret-key-for-testing-purposes"
	testCronSecret = "test-cron-secret"
	dateLayout     = "2006-01-02"
)

// TestContext holds per-scenario state: the wired application, its mocks,
// and the last HTTP exchange.
type TestContext struct {
	cfg    *config.Config
	db     *mock.Db
	redis  *redis.Client
	sender *email.MockEmailSender

	// The server is built lazily on the first request so Given steps can
	// still adjust the report policy.
	server *httptest.Server

	response     *http.Response
	responseBody []byte

	requestHeaders map[string]string
	accessToken    string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Environment: "test",
		},
		JWT: config.JWTConfig{
			Secret:            testJWTSecret,
			AccessTokenExpiry: time.Hour,
		},
		Report: config.ReportConfig{
			TriggerSecret: testCronSecret,
			Concurrency:   2,
			RunLockTTL:    time.Minute,
			RunTimeout:    30 * time.Second,
		},
	}
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{
			cfg:            testConfig(),
			db:             mock.NewDb(),
			redis:          mock.NewRedis(),
			sender:         email.NewMockEmailSender(),
			requestHeaders: make(map[string]string),
		}

		if err := tc.db.Reset(); err != nil {
			return ctx, fmt.Errorf("failed to reset database: %w", err)
		}
		if err := mock.ClearRedis(tc.redis); err != nil {
			return ctx, fmt.Errorf("failed to clear redis: %w", err)
		}

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerSeedSteps(ctx)
	registerAPISteps(ctx)
	registerReportSteps(ctx)
	registerResponseSteps(ctx)
}

// ensureServer wires the full application over the test mocks and starts
// an HTTP server for it. Mirrors dependency.NewInjector, with the in-memory
// database, miniredis and the mock email sender swapped in.
func (tc *TestContext) ensureServer() error {
	if tc.server != nil {
		return nil
	}

	dbConn := tc.db.DbConn

	userRepo := persistence.NewUserRepository(dbConn)
	transactionRepo := persistence.NewTransactionRepository(dbConn)
	expenseRepo := persistence.NewExpenseRepository(dbConn)
	connectionRepo := persistence.NewPlatformConnectionRepository(dbConn)
	userDirectory := persistence.NewUserDirectory(dbConn)
	ledgerQuery := persistence.NewLedgerQuery(dbConn)

	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(tc.cfg.JWT.Secret, tc.cfg.JWT.AccessTokenExpiry)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to build email templates: %w", err)
	}
	notifier := email.NewReportNotifier(tc.sender, renderer)
	runLock := cache.NewRunLock(tc.redis)

	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	listConnectionsUseCase := platform.NewListConnectionsUseCase(connectionRepo)
	getKPIsUseCase := dashboard.NewGetKPIsUseCase(transactionRepo, expenseRepo)

	runReportUseCase := report.NewRunQuarterlyReportUseCase(
		userDirectory,
		ledgerQuery,
		notifier,
		report.Policy{
			SkipZeroActivity: tc.cfg.Report.SkipZeroActivity,
			Concurrency:      tc.cfg.Report.Concurrency,
		},
	)

	healthController := controller.NewHealthController(func() bool { return true })
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	transactionController := controller.NewTransactionController(createTransactionUseCase, listTransactionsUseCase)
	expenseController := controller.NewExpenseController(createExpenseUseCase, listExpensesUseCase)
	platformController := controller.NewPlatformController(listConnectionsUseCase)
	dashboardController := controller.NewDashboardController(getKPIsUseCase)
	reportController := controller.NewReportController(runReportUseCase, runLock, tc.cfg.Report)

	loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	cronAuthMiddleware := middleware.NewCronAuthMiddleware(tc.cfg.Report.TriggerSecret)

	r := router.NewRouter(
		healthController,
		authController,
		transactionController,
		expenseController,
		platformController,
		dashboardController,
		reportController,
		loginRateLimiter,
		authMiddleware,
		cronAuthMiddleware,
	)

	tc.server = httptest.NewServer(r.Setup(tc.cfg.Server.Environment))
	return nil
}

// findUser looks up a seeded or registered user by email.
func (tc *TestContext) findUser(email string) (*entity.User, error) {
	var userModel model.UserModel
	result := tc.db.DbConn.Where("email = ?", email).First(&userModel)
	if result.Error != nil {
		return nil, fmt.Errorf("user %s not found: %w", email, result.Error)
	}
	return userModel.ToEntity(), nil
}

// doRequest sends an HTTP request to the test server and captures the
// response for later assertions.
func (tc *TestContext) doRequest(method, endpoint string, body []byte) error {
	if err := tc.ensureServer(); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, tc.server.URL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// Seeding steps

func registerSeedSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a creator "([^"]*)" named "([^"]*)" exists$`, aCreatorExists)
	ctx.Step(`^"([^"]*)" has opted out of emails$`, creatorOptedOut)
	ctx.Step(`^"([^"]*)" recorded a "([^"]*)" payout of "([^"]*)" with a "([^"]*)" fee on "([^"]*)"$`, creatorRecordedPayout)
	ctx.Step(`^"([^"]*)" recorded a "([^"]*)" expense of "([^"]*)" on "([^"]*)"$`, creatorRecordedExpense)
}

func aCreatorExists(ctx context.Context, emailAddr, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	user := entity.NewUser(emailAddr, name, "integration-test-hash")
	return tc.db.DbConn.Create(model.UserFromEntity(user)).Error
}

func creatorOptedOut(ctx context.Context, emailAddr string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	result := tc.db.DbConn.Model(&model.UserModel{}).
		Where("email = ?", emailAddr).
		Update("email_notifications", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no user with email %s to opt out", emailAddr)
	}
	return nil
}

func creatorRecordedPayout(ctx context.Context, emailAddr, platformName, amount, fee, date string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	user, err := tc.findUser(emailAddr)
	if err != nil {
		return err
	}

	amountDec, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	feeDec, err := decimal.NewFromString(fee)
	if err != nil {
		return fmt.Errorf("invalid fee %q: %w", fee, err)
	}
	transactionDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	txn := entity.NewTransaction(
		user.ID, entity.Platform(platformName), "payout", "",
		amountDec, feeDec, transactionDate,
	)
	return tc.db.DbConn.Create(model.TransactionFromEntity(txn)).Error
}

func creatorRecordedExpense(ctx context.Context, emailAddr, category, amount, date string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	user, err := tc.findUser(emailAddr)
	if err != nil {
		return err
	}

	amountDec, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	expenseDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	exp := entity.NewExpense(user.ID, category, "", amountDec, expenseDate)
	return tc.db.DbConn.Create(model.ExpenseFromEntity(exp)).Error
}

// API steps

func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I am registered as "([^"]*)" with password "([^"]*)"$`, iAmRegisteredAs)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
}

func iAmRegisteredAs(ctx context.Context, emailAddr, password string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	body, err := json.Marshal(map[string]string{
		"email":    emailAddr,
		"name":     "Test Creator",
		"password": password,
	})
	if err != nil {
		return err
	}

	if err := tc.doRequest(http.MethodPost, "/api/v1/auth/register", body); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %s",
			tc.response.StatusCode, string(tc.responseBody))
	}

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(tc.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse registration response: %w", err)
	}
	if resp.AccessToken == "" {
		return errors.New("registration returned no access token")
	}

	tc.accessToken = resp.AccessToken
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	return tc.doRequest(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	return tc.doRequest(method, endpoint, []byte(body.Content))
}

func iSetHeaderTo(ctx context.Context, header, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	tc.requestHeaders[header] = value
	return nil
}

// Report run steps

func registerReportSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^zero-activity creators are skipped$`, zeroActivityCreatorsAreSkipped)
	ctx.Step(`^email delivery to "([^"]*)" is failing$`, emailDeliveryIsFailing)
	ctx.Step(`^a report run for "([^"]*)" to "([^"]*)" is already in progress$`, aReportRunIsAlreadyInProgress)
	ctx.Step(`^I trigger the quarterly report run$`, iTriggerTheReportRun)
	ctx.Step(`^I trigger the quarterly report run for "([^"]*)" to "([^"]*)"$`, iTriggerTheReportRunFor)
	ctx.Step(`^I trigger the quarterly report run with secret "([^"]*)"$`, iTriggerTheReportRunWithSecret)
	ctx.Step(`^"([^"]*)" should receive a report containing "([^"]*)"$`, shouldReceiveAReportContaining)
	ctx.Step(`^no report should be delivered to "([^"]*)"$`, noReportShouldBeDeliveredTo)
	ctx.Step(`^(\d+) reports? should have been delivered$`, reportsShouldHaveBeenDelivered)
	ctx.Step(`^the run should cover the previous calendar quarter$`, theRunShouldCoverThePreviousQuarter)
}

func zeroActivityCreatorsAreSkipped(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	if tc.server != nil {
		return errors.New("report policy must be set before the first request")
	}
	tc.cfg.Report.SkipZeroActivity = true
	return nil
}

func emailDeliveryIsFailing(ctx context.Context, emailAddr string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	tc.sender.SetFailureFor(emailAddr, errors.New("550 mailbox unavailable"))
	return nil
}

func aReportRunIsAlreadyInProgress(ctx context.Context, start, end string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	runLock := cache.NewRunLock(tc.redis)
	acquired, err := runLock.Acquire(ctx, start+"_"+end, time.Minute)
	if err != nil {
		return err
	}
	if !acquired {
		return errors.New("failed to pre-acquire the run lock")
	}
	return nil
}

func (tc *TestContext) triggerRun(secret string, body []byte) error {
	tc.requestHeaders[middleware.CronSecretHeader] = secret
	defer delete(tc.requestHeaders, middleware.CronSecretHeader)
	return tc.doRequest(http.MethodPost, "/internal/reports/quarterly", body)
}

func iTriggerTheReportRun(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	return tc.triggerRun(testCronSecret, nil)
}

func iTriggerTheReportRunFor(ctx context.Context, start, end string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	body, err := json.Marshal(map[string]string{
		"start_date": start,
		"end_date":   end,
	})
	if err != nil {
		return err
	}
	return tc.triggerRun(testCronSecret, body)
}

func iTriggerTheReportRunWithSecret(ctx context.Context, secret string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	return tc.triggerRun(secret, nil)
}

func shouldReceiveAReportContaining(ctx context.Context, emailAddr, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	for _, sent := range tc.sender.SentEmails {
		if sent.To != emailAddr {
			continue
		}
		if strings.Contains(sent.Subject, expected) || strings.Contains(sent.Text, expected) {
			return nil
		}
		return fmt.Errorf("report to %s does not contain %q. Subject: %s Body: %s",
			emailAddr, expected, sent.Subject, sent.Text)
	}
	return fmt.Errorf("no report was delivered to %s", emailAddr)
}

func noReportShouldBeDeliveredTo(ctx context.Context, emailAddr string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	for _, sent := range tc.sender.SentEmails {
		if sent.To == emailAddr {
			return fmt.Errorf("unexpected report delivered to %s", emailAddr)
		}
	}
	return nil
}

func reportsShouldHaveBeenDelivered(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	if len(tc.sender.SentEmails) != expected {
		return fmt.Errorf("expected %d delivered reports, got %d", expected, len(tc.sender.SentEmails))
	}
	return nil
}

func theRunShouldCoverThePreviousQuarter(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	var resp struct {
		PeriodStart string `json:"period_start"`
		PeriodEnd   string `json:"period_end"`
	}
	if err := json.Unmarshal(tc.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse run response: %w", err)
	}

	expected := report.PreviousQuarter(time.Now().UTC())
	if resp.PeriodStart != expected.Start.Format(dateLayout) ||
		resp.PeriodEnd != expected.End.Format(dateLayout) {
		return fmt.Errorf("expected period %s to %s, got %s to %s",
			expected.Start.Format(dateLayout), expected.End.Format(dateLayout),
			resp.PeriodStart, resp.PeriodEnd)
	}
	return nil
}

// Response steps

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	if tc.response == nil {
		return errors.New("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain %q. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return fmt.Errorf("field %q not found in response. Body: %s", field, string(tc.responseBody))
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return errors.New("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}
	if _, ok := data[field]; !ok {
		return fmt.Errorf("field %q not found in response. Body: %s", field, string(tc.responseBody))
	}
	return nil
}
