package booking

import "github.com/m04kA/SMC-GradShootBooking/pkg/dbmetrics"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

// activeBookingIndex частичный уникальный индекс по подтвержденным броням
const activeBookingIndex = "uniq_bookings_user_confirmed"
