// Command fooddelivery is a thin front end over the marketplace client: it
// wires the session store, transport and gateway together once, then maps
// subcommands onto gateway operations.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/fooddelivery/marketplace-go/internal/core/domain"
	"github.com/fooddelivery/marketplace-go/internal/core/outcome"
	"github.com/fooddelivery/marketplace-go/internal/core/ports"
	"github.com/fooddelivery/marketplace-go/internal/core/service"
	"github.com/fooddelivery/marketplace-go/internal/gateway"
	"github.com/fooddelivery/marketplace-go/internal/infrastructure/config"
	"github.com/fooddelivery/marketplace-go/internal/infrastructure/session"
	"github.com/fooddelivery/marketplace-go/internal/infrastructure/transport"
	"github.com/fooddelivery/marketplace-go/pkg/logger"
)

const usage = `usage: fooddelivery <command> [flags]

commands:
  login <email> <password>      authenticate and remember the session
  logout                        forget the session
  me                            show the authenticated profile
  register-buyer|register-seller|register-driver [flags]
  categories                    list food categories
  foods [flags]                 list foods
  food <id>                     show one food
  sellers [flags]               list restaurants
  order-create [flags]          place an order
  orders                        list orders
  order <id>                    show one order
  order-status <id> <status>    advance an order
  pay [flags]                   record a payment
  payments [--order id]         list payments
  payment <id>                  show one payment
  payment-status <id> <status> [--txn id]
  forgot-password <email>       request a password reset
`

type app struct {
	gw  *gateway.Gateway
	svc *service.AccountService
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	var store ports.SessionStore
	switch cfg.Session.Backend {
	case "redis":
		client, err := session.Connect(ctx, session.RedisConfig{Addr: cfg.Session.Redis.Addr, DB: cfg.Session.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("connecting session redis failed")
		}
		store = session.NewRedisStore(client, cfg.Session.Redis.Key)
	default:
		fileStore, err := session.NewFileStore(cfg.Session.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("opening session file failed")
		}
		store = fileStore
	}

	t, err := transport.New(transport.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout, Log: log})
	if err != nil {
		log.Fatal().Err(err).Msg("building transport failed")
	}

	gw := gateway.New(t, log)
	svc := service.NewAccountService(gw, t, store, log)
	gw.OnUnauthorized(svc.HandleUnauthorized)
	svc.Resume(ctx)

	a := &app{gw: gw, svc: svc}
	a.run(ctx, os.Args[1], os.Args[2:])
}

func (a *app) run(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "login":
		if len(args) != 2 {
			die("login <email> <password>")
		}
		renderResult(a.svc.Login(ctx, args[0], args[1]))
	case "logout":
		if err := a.svc.Logout(ctx); err != nil {
			die(err.Error())
		}
		fmt.Println("logged out")
	case "me":
		renderResult(a.gw.CurrentUser(ctx))
	case "register-buyer":
		a.registerBuyer(ctx, args)
	case "register-seller":
		a.registerSeller(ctx, args)
	case "register-driver":
		a.registerDriver(ctx, args)
	case "categories":
		renderResult(a.gw.Categories(ctx))
	case "foods":
		a.foods(ctx, args)
	case "food":
		renderResult(a.gw.Food(ctx, intArg(args, "food <id>")))
	case "sellers":
		a.sellers(ctx, args)
	case "order-create":
		a.orderCreate(ctx, args)
	case "orders":
		renderResult(a.gw.Orders(ctx, 0, 0))
	case "order":
		renderResult(a.gw.Order(ctx, intArg(args, "order <id>")))
	case "order-status":
		if len(args) != 2 {
			die("order-status <id> <status>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			die("invalid order id")
		}
		renderResult(a.gw.UpdateOrderStatus(ctx, id, domain.OrderStatus(args[1])))
	case "pay":
		a.pay(ctx, args)
	case "payments":
		a.payments(ctx, args)
	case "payment":
		renderResult(a.gw.Payment(ctx, intArg(args, "payment <id>")))
	case "payment-status":
		a.paymentStatus(ctx, args)
	case "forgot-password":
		if len(args) != 1 {
			die("forgot-password <email>")
		}
		renderResult(a.gw.ForgotPassword(ctx, args[0]))
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func (a *app) registerBuyer(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("register-buyer", flag.ExitOnError)
	base := baseFlags(fs)
	address := fs.String("address", "", "delivery address")
	_ = fs.Parse(args)
	renderResult(a.svc.Register(ctx, domain.BuyerRegistration{AccountBase: *base, Address: *address}))
}

func (a *app) registerSeller(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("register-seller", flag.ExitOnError)
	base := baseFlags(fs)
	storeName := fs.String("store-name", "", "store name")
	storeAddress := fs.String("store-address", "", "store address")
	storePhone := fs.String("store-phone", "", "store phone")
	storeDescription := fs.String("store-description", "", "store description")
	license := fs.String("license", "", "business license number")
	_ = fs.Parse(args)
	renderResult(a.svc.Register(ctx, domain.SellerRegistration{
		AccountBase:      *base,
		StoreName:        *storeName,
		StoreAddress:     *storeAddress,
		StorePhone:       *storePhone,
		StoreDescription: *storeDescription,
		LicenseNumber:    *license,
	}))
}

func (a *app) registerDriver(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("register-driver", flag.ExitOnError)
	base := baseFlags(fs)
	license := fs.String("license", "", "driving license number")
	vehicleType := fs.String("vehicle-type", "", "vehicle type")
	vehicleNumber := fs.String("vehicle-number", "", "vehicle plate number")
	_ = fs.Parse(args)
	renderResult(a.svc.Register(ctx, domain.DriverRegistration{
		AccountBase:   *base,
		LicenseNumber: *license,
		VehicleType:   *vehicleType,
		VehicleNumber: *vehicleNumber,
	}))
}

func (a *app) foods(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("foods", flag.ExitOnError)
	sellerID := fs.Int("seller", 0, "filter by seller id")
	categoryID := fs.Int("category", 0, "filter by category id")
	available := fs.Bool("available", false, "only available items")
	skip := fs.Int("skip", 0, "pagination offset")
	limit := fs.Int("limit", 0, "pagination limit")
	_ = fs.Parse(args)

	filter := domain.FoodFilter{Skip: *skip, Limit: *limit}
	if *sellerID > 0 {
		filter.SellerID = sellerID
	}
	if *categoryID > 0 {
		filter.CategoryID = categoryID
	}
	if *available {
		filter.IsAvailable = available
	}
	renderResult(a.gw.Foods(ctx, filter))
}

func (a *app) sellers(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("sellers", flag.ExitOnError)
	search := fs.String("search", "", "store name substring")
	minRating := fs.Float64("min-rating", 0, "minimum rating")
	_ = fs.Parse(args)

	filter := domain.SellerFilter{Search: *search}
	if *minRating > 0 {
		filter.MinRating = minRating
	}
	renderResult(a.gw.Sellers(ctx, filter))
}

func (a *app) orderCreate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("order-create", flag.ExitOnError)
	sellerID := fs.Int("seller", 0, "seller id")
	address := fs.String("address", "", "delivery address")
	phone := fs.String("phone", "", "delivery phone")
	notes := fs.String("notes", "", "delivery notes")
	fee := fs.String("fee", "0", "delivery fee")
	var items itemList
	fs.Var(&items, "item", "order line as foodID:quantity (repeatable)")
	_ = fs.Parse(args)

	deliveryFee, err := decimal.NewFromString(*fee)
	if err != nil {
		die("invalid fee")
	}
	renderResult(a.gw.CreateOrder(ctx, domain.OrderCreate{
		SellerID:        *sellerID,
		Items:           items,
		DeliveryAddress: *address,
		DeliveryPhone:   *phone,
		DeliveryNotes:   *notes,
		DeliveryFee:     deliveryFee,
	}))
}

func (a *app) pay(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("pay", flag.ExitOnError)
	orderID := fs.Int("order", 0, "order id")
	method := fs.String("method", "cash", "payment method")
	txn := fs.String("txn", "", "transaction id")
	notes := fs.String("notes", "", "payment notes")
	_ = fs.Parse(args)

	renderResult(a.gw.CreatePayment(ctx, domain.PaymentCreate{
		OrderID:       *orderID,
		PaymentMethod: domain.PaymentMethod(*method),
		TransactionID: *txn,
		PaymentNotes:  *notes,
	}))
}

func (a *app) payments(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("payments", flag.ExitOnError)
	orderID := fs.Int("order", 0, "filter by order id")
	_ = fs.Parse(args)

	filter := domain.PaymentFilter{}
	if *orderID > 0 {
		filter.OrderID = orderID
	}
	renderResult(a.gw.Payments(ctx, filter))
}

func (a *app) paymentStatus(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("payment-status", flag.ExitOnError)
	txn := fs.String("txn", "", "transaction id")
	_ = fs.Parse(args)
	rest := fs.Args()
	if len(rest) != 2 {
		die("payment-status <id> <status> [--txn id]")
	}
	id, err := strconv.Atoi(rest[0])
	if err != nil {
		die("invalid payment id")
	}
	renderResult(a.gw.UpdatePaymentStatus(ctx, id, domain.PaymentState(rest[1]), *txn))
}

// itemList collects repeated --item foodID:quantity flags.
type itemList []domain.OrderItemCreate

func (l *itemList) String() string { return fmt.Sprintf("%v", []domain.OrderItemCreate(*l)) }

func (l *itemList) Set(v string) error {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected foodID:quantity, got %q", v)
	}
	foodID, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("invalid food id %q", parts[0])
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", parts[1])
	}
	*l = append(*l, domain.OrderItemCreate{FoodID: foodID, Quantity: qty})
	return nil
}

func baseFlags(fs *flag.FlagSet) *domain.AccountBase {
	base := &domain.AccountBase{}
	fs.StringVar(&base.Email, "email", "", "account email")
	fs.StringVar(&base.Username, "username", "", "account username")
	fs.StringVar(&base.Password, "password", "", "account password")
	fs.StringVar(&base.FullName, "full-name", "", "full name")
	fs.StringVar(&base.PhoneNumber, "phone", "", "phone number")
	return base
}

func renderResult[T any](res outcome.Outcome[T]) {
	value, failure := res.Get()
	if failure != nil {
		fmt.Fprintf(os.Stderr, "error (%s): %s\n", failure.Category, failure.Message)
		os.Exit(1)
	}
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		die(err.Error())
	}
	fmt.Println(string(raw))
}

func intArg(args []string, usageLine string) int {
	if len(args) != 1 {
		die(usageLine)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		die("invalid id")
	}
	return id
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
