// Package resilience provides fault tolerance patterns for the application.
// It includes retry with exponential backoff for transient database errors
// and a circuit breaker that sheds load when the database stays unhealthy.
//
// Usage Example:
//
//	dcb := circuitbreaker.NewDBCircuitBreaker(db)
//	rows, err := dcb.QueryContext(ctx, "SELECT ...")
//
//	err := retry.Do(ctx, retry.DBConfig(), func() error {
//	    return performOperation(ctx)
//	})
package resilience
