package routing

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"motoshop/pkg/cart"
	"motoshop/pkg/handlers"
	"motoshop/pkg/order"
	"motoshop/pkg/product"
	"motoshop/pkg/session"
	"motoshop/pkg/user"
	"motoshop/pkg/userlock"
)

func InitRoutes(api *mux.Router, db *sql.DB, mongoDB *mongo.Database, logger *slog.Logger) {

	sessionManager := session.NewManager(session.NewMySQLSessionRepo(db))

	productService := product.NewService(product.NewMongoRepo(mongoDB))

	/* один набор локов на cart и checkout, ключ — user id */
	locks := userlock.New()

	userRepo := user.NewMySQLRepo(db)
	userService := user.NewService(userRepo, sessionManager)

	cartRepo := cart.NewMySQLRepo(db)
	cartService := cart.NewService(cartRepo, productService, locks)

	orderService := order.NewService(order.NewMongoRepo(mongoDB), cartRepo, productService, userRepo, locks)

	userHandler := handlers.NewUserHandler(userService, cartService, logger)
	cartHandler := handlers.NewCartHandler(cartService, logger)
	orderHandler := handlers.NewOrderHandler(orderService, logger)
	productHandler := handlers.NewProductHandler(productService, logger)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	authRouter := api.PathPrefix("").Subrouter()
	userRouter := api.PathPrefix("/user").Subrouter()
	cartRouter := api.PathPrefix("/cart").Subrouter()
	ordersRouter := api.PathPrefix("/orders").Subrouter()
	productsRouter := api.PathPrefix("/products").Subrouter()

	/* auth routers */
	authRouter.HandleFunc("/register", userHandler.Register).Methods("POST").Name("register")
	authRouter.HandleFunc("/login", userHandler.Login).Methods("POST").Name("login")
	authRouter.HandleFunc("/logout", userHandler.Logout).Methods("DELETE")
	authRouter.HandleFunc("/extend", userHandler.Extend).Methods("PATCH")

	/* user routers */
	userRouter.HandleFunc("/me", userHandler.Me).Methods("GET")
	userRouter.HandleFunc("/password", userHandler.ChangePassword).Methods("PATCH")

	/* cart routers */
	cartRouter.HandleFunc("", cartHandler.GetCart).Methods("GET")
	cartRouter.HandleFunc("", cartHandler.EditCart).Methods("POST")
	cartRouter.HandleFunc("/{product_id:[a-fA-F0-9]+}", cartHandler.RemoveLine).Methods("DELETE")

	/* order routers */
	authRouter.HandleFunc("/checkout", orderHandler.Checkout).Methods("POST")
	ordersRouter.HandleFunc("", orderHandler.GetMyOrders).Methods("GET")
	ordersRouter.HandleFunc("/all", orderHandler.GetAllOrders).Methods("GET")

	/* product routers */
	productsRouter.HandleFunc("", productHandler.GetOnSale).Methods("GET")
	productsRouter.HandleFunc("", productHandler.Create).Methods("POST")
	productsRouter.HandleFunc("/all", productHandler.GetAll).Methods("GET")
	productsRouter.HandleFunc("/{product_id:[a-fA-F0-9]+}", productHandler.GetByID).Methods("GET")
	productsRouter.HandleFunc("/{product_id:[a-fA-F0-9]+}", productHandler.Update).Methods("PATCH")
}

func StartServer(r *mux.Router) {
	fmt.Println("\n\033[32m", "The server is running on http://localhost:8082", "\033[0m")
	if err := http.ListenAndServe(":8082", r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
