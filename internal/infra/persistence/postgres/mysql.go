package postgres

import (
	"net"
	"strconv"
	"time"

	"hbnb/config"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// mysqlDSN renders the connection string of one mysql endpoint. Timestamps
// are parsed into time.Time and read back in UTC.
func mysqlDSN(cfg *config.MySQLConfig, host string, port int, user, password string) string {
	dsn := mysql.NewConfig()
	dsn.User = user
	dsn.Passwd = password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	dsn.DBName = cfg.Database
	dsn.ParseTime = true
	dsn.Loc = time.UTC
	dsn.Params = map[string]string{"charset": "utf8mb4"}

	return dsn.FormatDSN()
}

// openMySQL connects to the primary and registers any replicas with
// dbresolver, which routes reads to them.
func openMySQL(cfg *config.MySQLConfig) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("mysql configuration is missing")
	}

	primary := mysqlDSN(cfg, cfg.Host, cfg.Port, cfg.UserName, cfg.Password)
	db, err := gorm.Open(gormmysql.Open(primary), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, errors.Wrap(err, "gorm.Open mysql")
	}

	if len(cfg.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
		for _, r := range cfg.Replicas {
			user, password := r.UserName, r.Password
			if user == "" {
				user, password = cfg.UserName, cfg.Password
			}
			replicas = append(replicas, gormmysql.Open(mysqlDSN(cfg, r.Host, r.Port, user, password)))
		}

		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, errors.Wrap(err, "register mysql replicas")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "mysql sql.DB")
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, nil
}
