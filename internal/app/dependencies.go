package app

import (
	"github.com/RichardMcSorley/breather/internal/amqp"
	"github.com/RichardMcSorley/breather/internal/config"
	"github.com/RichardMcSorley/breather/internal/event_bus"
	"github.com/RichardMcSorley/breather/internal/metrics"
	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/RichardMcSorley/breather/pkg/bill"
	"github.com/RichardMcSorley/breather/pkg/bill_payment"
	"github.com/RichardMcSorley/breather/pkg/mileage"
	"github.com/RichardMcSorley/breather/pkg/payment_plan"
	"github.com/RichardMcSorley/breather/pkg/settings"
	"github.com/RichardMcSorley/breather/pkg/summary"
	"github.com/RichardMcSorley/breather/pkg/transaction"
	"github.com/RichardMcSorley/breather/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock
	Metrics  *metrics.Metrics

	UserService user.Service
	UserHandler *user.Handler

	BillRepo    bill.Repository
	BillService *bill.ServiceImpl
	BillHandler *bill.Handler

	BillPaymentService *bill_payment.ServiceImpl
	BillPaymentHandler *bill_payment.Handler

	TransactionService *transaction.ServiceImpl
	TransactionHandler *transaction.Handler

	MileageService *mileage.ServiceImpl
	MileageHandler *mileage.Handler

	SettingsService *settings.ServiceImpl
	SettingsHandler *settings.Handler

	PaymentPlanService *payment_plan.ServiceImpl
	PaymentPlanHandler *payment_plan.Handler

	SummaryService     *summary.ServiceImpl
	CsvSummaryRenderer *summary.CsvSummaryRendererImpl
	SummaryHandler     *summary.Handler

	unsubscribers []func()
}

// repositories groups the storage each service is built on.
type repositories struct {
	users        user.Repo
	bills        bill.Repository
	billPayments bill_payment.Repository
	transactions transaction.Repository
	mileage      mileage.Repository
	settings     settings.Repository
}

func postgresRepositories(db *pgxpool.Pool) repositories {
	return repositories{
		users:        user.NewUserRepo(db),
		bills:        bill.NewBillRepo(db),
		billPayments: bill_payment.NewBillPaymentRepo(db),
		transactions: transaction.NewTransactionRepo(db),
		mileage:      mileage.NewMileageRepo(db),
		settings:     settings.NewSettingsRepo(db),
	}
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	return buildDependencies(postgresRepositories(db), cfg)
}

func buildDependencies(repos repositories, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}
	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New()
		deps.unsubscribers = append(deps.unsubscribers, deps.Metrics.SubscribeToBillPayments(deps.EventBus))
	}

	deps.UserService = user.NewUserService(repos.users)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.BillRepo = repos.bills
	deps.BillService = bill.NewBillService(deps.BillRepo)
	deps.BillHandler = bill.NewBillHandler(deps.BillService)

	deps.BillPaymentService = bill_payment.NewBillPaymentService(repos.billPayments, deps.BillRepo, deps.EventBus)
	deps.BillPaymentHandler = bill_payment.NewBillPaymentHandler(deps.BillPaymentService)

	deps.TransactionService = transaction.NewTransactionService(repos.transactions)
	deps.TransactionHandler = transaction.NewTransactionHandler(deps.TransactionService, deps.Clock)
	deps.unsubscribers = append(deps.unsubscribers, deps.TransactionService.SubscribeToBillPayments(deps.EventBus))

	deps.MileageService = mileage.NewMileageService(repos.mileage)
	deps.MileageHandler = mileage.NewMileageHandler(deps.MileageService, deps.Clock)

	defaultSettings := settings.Settings{IrsMileageDeduction: decimal.NewFromFloat(cfg.Summary.MileageRate)}
	deps.SettingsService = settings.NewSettingsService(repos.settings, defaultSettings)
	deps.SettingsHandler = settings.NewSettingsHandler(deps.SettingsService)

	deps.PaymentPlanService = payment_plan.NewService(deps.BillService.GetAll, decimal.NewFromFloat(cfg.Plan.DailyPayment))
	deps.PaymentPlanHandler = payment_plan.NewHandler(deps.PaymentPlanService)

	deps.SummaryService = summary.NewService(
		deps.TransactionService,
		deps.BillService,
		deps.BillPaymentService,
		deps.MileageService,
		deps.SettingsService,
	)
	deps.CsvSummaryRenderer = summary.NewCsvSummaryRenderer()
	deps.SummaryHandler = summary.NewHandler(deps.SummaryService, deps.CsvSummaryRenderer, deps.Clock)

	return deps
}

// ForwardEvents publishes recorded bill payments to the message broker.
func (d *Dependencies) ForwardEvents(publisher amqp.MessagePublisher, routingKey string) {
	d.unsubscribers = append(d.unsubscribers, amqp.ForwardBillPayments(d.EventBus, publisher, routingKey))
}

// Close detaches event subscribers.
func (d *Dependencies) Close() {
	for _, unsubscribe := range d.unsubscribers {
		unsubscribe()
	}
	d.unsubscribers = nil
}
