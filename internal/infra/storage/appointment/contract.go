package appointment

import (
	"github.com/luminahealth/LMH-SchedulingService/pkg/dbmetrics"
)

// Database executor interfaces are shared with pkg/dbmetrics so the
// repository works against the raw pool, the metrics wrapper and open
// transactions alike.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
