// Package resource bounds the work a sweep or an archive upload may do at once.
//
// A Controller governs three resources:
//
//   - Fit slots: how many clusterers may be fitted concurrently (blocking).
//   - Memory: a budget for large allocations such as the agglomerative
//     distance matrix (non-blocking, fail-fast).
//   - IO: a token bucket throttling archive traffic in bytes per second.
//
// Usage:
//
//	rc := resource.NewController(resource.Config{
//	    MaxConcurrentFits: 4,
//	    MemoryLimitBytes:  1 << 30,
//	})
//
//	lease, err := rc.AcquireFit(ctx, cluster.MatrixBytes(n))
//	if err != nil {
//	    return err
//	}
//	defer lease.Release()
//
// # Nil Safety
//
// All methods handle a nil Controller; they become no-ops.
package resource
