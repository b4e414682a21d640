package main

import (
	"motoshop/internal/config"
	"motoshop/internal/logger"
	"motoshop/internal/mongo"
	"motoshop/internal/mysql"
	"motoshop/internal/routing"
	"motoshop/pkg/middleware"
	"motoshop/pkg/session"

	"github.com/gorilla/mux"
)

func main() {
	config.Load() // load env var from .env

	db := mysql.LoadDB()
	defer db.Close()

	mongoDB := mongo.LoadDB()

	logger := logger.Load()

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Panic)
	api.Use(middleware.CheckJWT(session.NewMySQLSessionRepo(db)))

	routing.InitRoutes(api, db, mongoDB, logger)
	routing.StartServer(r) // start server on localhost:8082
}
