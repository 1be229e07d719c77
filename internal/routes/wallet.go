package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kibo-pay/kibo_pay/internal/wallet"
)

// RegisterWalletRoutes wires wallet-related endpoints.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Post("/wallet", h.PerformOperation)
	r.Get("/wallets/:walletId", h.Balance)
}
