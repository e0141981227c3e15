// Package database handles the connection to the reference database and
// loads query results as datasets.
//
// It provides a wrapper around GORM to configure MySQL connections from the
// application's configuration, and a read-only guard applied to every
// user-supplied query before it runs.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
//
//	ds, err := database.QueryDataset(ctx, db, "SELECT * FROM SampleData", "SQL")
package database
