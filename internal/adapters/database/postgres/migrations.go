package postgres

import "github.com/Badsnus/qr-studio/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.Export{},
}
