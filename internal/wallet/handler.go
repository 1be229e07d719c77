package wallet

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type operationRequest struct {
	WalletID      string `json:"walletId"`
	OperationType string `json:"operationType"`
	Amount        int64  `json:"amount"`
}

type operationResponse struct {
	WalletID uuid.UUID        `json:"walletId"`
	Balance  *decimal.Decimal `json:"balance,omitempty"`
	Message  string           `json:"message"`
}

type balanceResponse struct {
	WalletID uuid.UUID       `json:"walletId"`
	Balance  decimal.Decimal `json:"balance"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// PerformOperation applies a deposit or withdrawal to the wallet named in
// the request body.
func (h *Handler) PerformOperation(c *fiber.Ctx) error {
	var req operationRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, http.StatusBadRequest, "INVALID_JSON", "malformed request body")
	}

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "walletId: must be a valid UUID")
	}
	opType := OperationType(req.OperationType)
	if !opType.Valid() {
		return writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "operationType: must be DEPOSIT or WITHDRAW")
	}
	if req.Amount <= 0 {
		return writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "amount: must be positive")
	}

	result, err := h.service.PerformOperation(c.UserContext(), walletID, opType, req.Amount)
	if err != nil {
		var insufficient *InsufficientFundsError
		switch {
		case errors.Is(err, ErrWalletNotFound):
			return c.Status(http.StatusNotFound).JSON(operationResponse{WalletID: walletID, Message: err.Error()})
		case errors.As(err, &insufficient):
			return c.Status(http.StatusUnprocessableEntity).JSON(operationResponse{WalletID: walletID, Message: err.Error()})
		default:
			h.logger.Error("perform operation failed",
				slog.String("wallet_id", walletID.String()),
				slog.String("operation", string(opType)),
				slog.Any("error", err))
			return c.Status(http.StatusInternalServerError).JSON(operationResponse{WalletID: walletID, Message: "internal server error"})
		}
	}

	return c.Status(http.StatusOK).JSON(operationResponse{
		WalletID: result.WalletID,
		Balance:  &result.Balance,
		Message:  result.Message,
	})
}

// Balance returns the current balance of the wallet in the path.
func (h *Handler) Balance(c *fiber.Ctx) error {
	walletID, err := uuid.Parse(c.Params("walletId"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "walletId: must be a valid UUID")
	}

	snapshot, err := h.service.Balance(c.UserContext(), walletID)
	if err != nil {
		if errors.Is(err, ErrWalletNotFound) {
			return writeError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		}
		h.logger.Error("balance query failed", slog.String("wallet_id", walletID.String()), slog.Any("error", err))
		return writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}

	return c.Status(http.StatusOK).JSON(balanceResponse{
		WalletID: snapshot.WalletID,
		Balance:  snapshot.Balance,
	})
}

func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorResponse{Error: code, Message: message, Status: status})
}
