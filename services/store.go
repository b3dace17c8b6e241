package services

import "gorm.io/gorm"

// DbService is the store surface shared by the SQLite and Postgres services.
type DbService interface {
	Db() *gorm.DB
	HandleError(err error) error
}
