package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")

	// Payment plan, registered ahead of /api/bills/{billId}
	r.HandleFunc("/api/bills/payment-plan", deps.PaymentPlanHandler.GeneratePlan).Methods("POST")

	// Bills
	r.HandleFunc("/api/bills", deps.BillHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/bills", deps.BillHandler.Create).Methods("POST")
	r.HandleFunc("/api/bills/{billId}", deps.BillHandler.Get).Methods("GET")
	r.HandleFunc("/api/bills/{billId}", deps.BillHandler.Update).Methods("PUT")
	r.HandleFunc("/api/bills/{billId}", deps.BillHandler.Delete).Methods("DELETE")

	// Bill payments
	r.HandleFunc("/api/bills/{billId}/payments", deps.BillPaymentHandler.GetForBill).Methods("GET")
	r.HandleFunc("/api/bills/{billId}/payments", deps.BillPaymentHandler.Record).Methods("POST")
	r.HandleFunc("/api/bills/{billId}/payments/{paymentId}", deps.BillPaymentHandler.Delete).Methods("DELETE")

	// Transactions
	r.HandleFunc("/api/transactions", deps.TransactionHandler.GetInRange).Methods("GET")
	r.HandleFunc("/api/transactions", deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc("/api/transactions/{id}", deps.TransactionHandler.Update).Methods("PUT")
	r.HandleFunc("/api/transactions/{id}", deps.TransactionHandler.Delete).Methods("DELETE")

	// Mileage
	r.HandleFunc("/api/mileage", deps.MileageHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/mileage", deps.MileageHandler.Create).Methods("POST")
	r.HandleFunc("/api/mileage/{entryId}", deps.MileageHandler.Delete).Methods("DELETE")

	// Settings
	r.HandleFunc("/api/settings", deps.SettingsHandler.Get).Methods("GET")
	r.HandleFunc("/api/settings", deps.SettingsHandler.Update).Methods("PUT")

	// Summary
	r.HandleFunc("/api/summary", deps.SummaryHandler.GetSummary).Methods("GET")

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
	}
}
