// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	httpin "github.com/sudipto39/Shop-Xpress/internal/adapters/in/http"
	"github.com/sudipto39/Shop-Xpress/internal/adapters/in/http/handler"
	"github.com/sudipto39/Shop-Xpress/internal/adapters/in/http/middleware"
	fsout "github.com/sudipto39/Shop-Xpress/internal/adapters/out/firestore"
	"github.com/sudipto39/Shop-Xpress/internal/adapters/out/gcs"
	"github.com/sudipto39/Shop-Xpress/internal/adapters/out/mail"
	"github.com/sudipto39/Shop-Xpress/internal/adapters/out/memory"
	"github.com/sudipto39/Shop-Xpress/internal/adapters/out/razorpay"
	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
	appcfg "github.com/sudipto39/Shop-Xpress/internal/infra/config"
)

// Container wires repositories, usecases and handlers for the storefront.
// Build it once at boot via NewContainer and hand RouterDeps() to the router.
type Container struct {
	Config *appcfg.Config
	Infra  *Infra

	// kept for the periodic guest-cart sweep in main
	GuestCarts *memory.CartRepositoryMem

	deps httpin.Deps
}

// NewContainer builds the full dependency graph. Firestore is required;
// auth, payments, mail and image upload degrade to disabled when their
// credentials are missing.
func NewContainer(ctx context.Context) (*Container, error) {
	inf, err := NewInfra(ctx)
	if err != nil {
		return nil, fmt.Errorf("di: infra: %w", err)
	}

	c := &Container{
		Config: inf.Config,
		Infra:  inf,
	}

	// ── repositories ─────────────────────────────────────────────
	userRepo := fsout.NewUserRepositoryFS(inf.Firestore)
	productRepo := fsout.NewProductRepositoryFS(inf.Firestore)
	cartRepo := fsout.NewCartRepositoryFS(inf.Firestore)
	orderRepo := fsout.NewOrderRepositoryFS(inf.Firestore)
	guestCarts := memory.NewCartRepositoryMem()
	c.GuestCarts = guestCarts

	// ── payment gateway ─────────────────────────────────────────
	var gateway usecase.PaymentGateway
	{
		keyID := strings.TrimSpace(inf.Config.RazorpayKeyID)
		secret, err := inf.RazorpayKeySecret(ctx)
		if err != nil {
			log.Printf("[di] WARN: razorpay secret: %v (payments disabled)", err)
		}
		if keyID != "" && secret != "" {
			gw, err := razorpay.New(keyID, secret)
			if err != nil {
				log.Printf("[di] WARN: razorpay client: %v (payments disabled)", err)
			} else {
				gateway = gw
			}
		} else {
			log.Printf("[di] WARN: razorpay credentials missing (payments disabled)")
		}
	}

	// ── usecases ────────────────────────────────────────────────
	serverCartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	guestCartUC := usecase.NewCartUsecase(guestCarts, productRepo)
	mergeUC := usecase.NewCartMergeUsecase(guestCarts, serverCartUC)

	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, cartRepo, userRepo, gateway)
	if key := strings.TrimSpace(inf.Config.SendGridAPIKey); key != "" {
		orderUC = orderUC.WithMailer(mail.NewSendGridClient(key), inf.Config.MailFrom)
	} else {
		log.Printf("[di] WARN: SENDGRID_API_KEY missing (confirmation mail disabled)")
	}

	userUC := usecase.NewUserUsecase(userRepo)
	productUC := usecase.NewProductUsecase(productRepo)
	adminUC := usecase.NewAdminUsecase(orderRepo, userRepo)

	// ── image upload ────────────────────────────────────────────
	var uploader handler.ImageUploader
	if inf.GCS != nil && strings.TrimSpace(inf.Config.ProductImageBucket) != "" {
		uploader = gcs.NewProductImageRepositoryGCS(inf.GCS, inf.Config.ProductImageBucket)
	} else {
		log.Printf("[di] WARN: GCS or PRODUCT_IMAGE_BUCKET missing (image upload disabled)")
	}

	// ── middleware chains ───────────────────────────────────────
	var verifier middleware.TokenVerifier
	if inf.FirebaseAuth != nil {
		verifier = inf.FirebaseAuth
	}
	userAuth := &middleware.UserAuth{Verifier: verifier}
	sessionAuth := &middleware.SessionAuth{Verifier: verifier}
	adminOnly := &middleware.AdminOnly{Users: userRepo}

	// ── handlers ────────────────────────────────────────────────
	c.deps = httpin.Deps{
		Product: handler.NewProductHandler(productUC),
		Cart:    sessionAuth.Handler(handler.NewCartHandler(serverCartUC, guestCartUC, mergeUC)),
		Order:   userAuth.Handler(handler.NewOrderHandler(orderUC)),
		Auth:    userAuth.Handler(handler.NewAuthHandler(userUC)),
		Admin:   userAuth.Handler(adminOnly.Handler(handler.NewAdminHandler(adminUC, productUC, uploader))),
	}

	return c, nil
}

// RouterDeps returns the handler set for httpin.Register.
func (c *Container) RouterDeps() httpin.Deps {
	if c == nil {
		return httpin.Deps{}
	}
	return c.deps
}

// NewRouter builds a mux with all storefront routes registered.
func (c *Container) NewRouter() http.Handler {
	mux := http.NewServeMux()
	httpin.Register(mux, c.RouterDeps())
	return mux
}

// Close releases infra clients.
func (c *Container) Close() error {
	if c == nil || c.Infra == nil {
		return nil
	}
	return c.Infra.Close()
}
