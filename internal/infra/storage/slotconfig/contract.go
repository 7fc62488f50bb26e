package slotconfig

import "github.com/m04kA/SMC-GradShootBooking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
