package appcontext

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/RoyceAzure/lab/cartcenter/internal/config"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/client"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/producer"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/redis_decorator"
	"github.com/RoyceAzure/lab/cartcenter/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/cartcenter/internal/service"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf                *config.Config
	DbConn            *gorm.DB
	DbDao             *db.DbDao
	CartRepo          db.ICartRepository
	CartItemRepo      db.ICartItemRepository
	RedisClient       *redis.Client
	CatalogClient     client.IProductClient
	AccountClient     client.IUserClient
	AbandonedProducer producer.IAbandonedCartProducer
	CartService       service.ICartService
	CartItemService   service.ICartItemService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	err := app.Init()
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	err := app.setUpDbConn()
	if err != nil {
		return err
	}
	err = app.setUpRepos()
	if err != nil {
		return err
	}
	err = app.setUpClients()
	if err != nil {
		return err
	}
	err = app.setUpProducer()
	if err != nil {
		return err
	}
	err = app.setUpServices()
	if err != nil {
		return err
	}
	return nil
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	app.DbDao = db.NewDbDao(conn)

	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpRepos() error {
	log.Printf("Start setup repositories")
	app.CartRepo = db.NewCartRepo(app.DbDao)
	app.CartItemRepo = db.NewCartItemRepo(app.DbDao)
	log.Printf("Finish setup repositories")
	return nil
}

// catalog client外面包一層redis cache aside
func (app *ApplicationContext) setUpClients() error {
	log.Printf("Start setup external clients")
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
	})

	snapshotRepo := redis_repo.NewProductSnapshotRepo(
		app.RedisClient,
		time.Duration(app.Cf.ProductCacheTTLSeconds)*time.Second,
	)
	app.CatalogClient = redis_decorator.NewCacheAsideProductClient(
		client.NewCatalogClient(app.Cf.CatalogServiceUrl),
		snapshotRepo,
	)
	app.AccountClient = client.NewAccountClient(app.Cf.AccountServiceUrl)
	log.Printf("Finish setup external clients")
	return nil
}

func (app *ApplicationContext) setUpProducer() error {
	log.Printf("Start setup abandoned cart producer")
	app.AbandonedProducer = producer.NewAbandonedCartProducer(app.Cf.KafkaBrokers, app.Cf.AbandonedCartTopic)
	log.Printf("Finish setup abandoned cart producer")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	log.Printf("Start setup services")
	app.CartService = service.NewCartService(app.CartRepo, app.CartItemRepo, app.CatalogClient, app.AccountClient)
	app.CartItemService = service.NewCartItemService(app.CartItemRepo)
	log.Printf("Finish setup services")
	return nil
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.AbandonedProducer != nil {
			log.Printf("Closing kafka producer...")
			if err := app.AbandonedProducer.Close(); err != nil {
				log.Printf("kafka producer shutdown error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis client...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis shutdown error: %v", err)
			}
		}

		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
