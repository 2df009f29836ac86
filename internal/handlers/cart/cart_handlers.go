package cart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/EdYashida/ecommerce-api/internal/models"
	"github.com/EdYashida/ecommerce-api/internal/mykafka"
	"github.com/EdYashida/ecommerce-api/internal/service"
)

type CartHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
}

type cartEntry struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to add item to the cart")
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to add item to the cart")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to add item to the cart")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	// no dedup: a second add for the same product is a second row
	item := models.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": product.ID,
		"itemID":    item.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Item added to the cart successfully"})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to remove the item from the cart")
	}

	// duplicates stay: only the oldest matching row goes per call
	var item models.CartItem
	if err := h.DB.Where("user_id = ? AND product_id = ?", userID, id).Order("id").First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to remove the item from the cart")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := h.DB.Delete(&item).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":   "cart_item_removed",
		"userID": userID,
		"itemID": item.ID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Item removed from the cart successfully"})
}

func (h *CartHandler) ViewCart(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	var items []models.CartItem
	if err := h.DB.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	entries := make([]cartEntry, 0, len(items))
	for _, item := range items {
		var product models.Product
		if err := h.DB.First(&product, item.ProductID).Error; err != nil {
			// a cart row without its product is a data fault, not a client error
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		entries = append(entries, cartEntry{
			ID:           item.ID,
			UserID:       item.UserID,
			ProductID:    item.ProductID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
		})
	}

	return c.JSON(http.StatusOK, entries)
}

func (h *CartHandler) Checkout(c echo.Context) error {
	userID, err := service.UserID(c)
	if err != nil {
		return err
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if txErr != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, map[string]any{
		"type":   "cart_checked_out",
		"userID": userID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Checkout successfully, the cart has been cleared"})
}
