package handlers

import (
	"errors"
	"net/http"

	"exoticworld/dtos"
	"exoticworld/models"
	"exoticworld/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartHandler serves the per-user cart. Carts are keyed by the free-form
// usuarioId path parameter and created on first write.
type CartHandler struct {
	DB *gorm.DB
}

type cartLineQuery struct {
	ProductID int `form:"productoId" binding:"required,min=1"`
}

type cartQuantityQuery struct {
	ProductID int `form:"productoId" binding:"required,min=1"`
	Quantity  int `form:"cantidad" binding:"min=1"`
}

var errCartItemNotFound = errors.New("cart item not found")

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return false
	}
	return true
}

// findCart loads the user's cart. It returns gorm.ErrRecordNotFound when the
// user has never written to a cart.
func findCart(db *gorm.DB, userID string) (models.Cart, error) {
	var cart models.Cart
	err := db.Where("usuario_id = ?", userID).First(&cart).Error
	return cart, err
}

// ensureCart returns the user's cart, creating it when missing. Concurrent
// first writes for the same user converge on the single row.
func ensureCart(db *gorm.DB, userID string) (models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&cart).Error; err != nil {
		return cart, err
	}
	return findCart(db, userID)
}

func findLine(db *gorm.DB, cartID, productID int) (models.CartItem, error) {
	var item models.CartItem
	err := db.Where("carrito_id = ? AND producto_id = ?", cartID, productID).First(&item).Error
	return item, err
}

func (h *CartHandler) respondLine(c *gin.Context, id int) {
	var item models.CartItem
	if err := h.DB.Preload("Cart").Preload("Product").First(&item, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CartHandler) productExists(productID int) bool {
	var count int64
	h.DB.Model(&models.Product{}).Where("producto_id = ?", productID).Count(&count)
	return count > 0
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := findCart(h.DB, c.Param("usuarioId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem adds cantidad units of productoId, incrementing an existing line.
func (h *CartHandler) AddItem(c *gin.Context) {
	var query cartQuantityQuery
	if !bindQuery(c, &query) {
		return
	}
	if !h.productExists(query.ProductID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var itemID int
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := ensureCart(tx, c.Param("usuarioId"))
		if err != nil {
			return err
		}

		item, err := findLine(tx, cart.ID, query.ProductID)
		switch {
		case err == nil:
			item.Quantity += query.Quantity
			err = tx.Omit(clause.Associations).Save(&item).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{CartID: cart.ID, ProductID: query.ProductID, Quantity: query.Quantity}
			err = tx.Omit(clause.Associations).Create(&item).Error
		}
		itemID = item.ID
		return err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	h.respondLine(c, itemID)
}

// DecrementItem removes one unit of productoId. A line that reaches zero is
// deleted and the response body is null.
func (h *CartHandler) DecrementItem(c *gin.Context) {
	var query cartLineQuery
	if !bindQuery(c, &query) {
		return
	}

	var (
		itemID  int
		removed bool
	)
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, c.Param("usuarioId"))
		if err != nil {
			return errCartItemNotFound
		}
		item, err := findLine(tx, cart.ID, query.ProductID)
		if err != nil {
			return errCartItemNotFound
		}

		if item.Quantity <= 1 {
			removed = true
			return tx.Delete(&item).Error
		}
		item.Quantity--
		itemID = item.ID
		return tx.Omit(clause.Associations).Save(&item).Error
	})
	if errors.Is(err, errCartItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	if removed {
		c.JSON(http.StatusOK, nil)
		return
	}
	h.respondLine(c, itemID)
}

// UpdateQuantity sets the quantity of an existing productoId line.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var query cartQuantityQuery
	if !bindQuery(c, &query) {
		return
	}

	var itemID int
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := findCart(tx, c.Param("usuarioId"))
		if err != nil {
			return errCartItemNotFound
		}
		item, err := findLine(tx, cart.ID, query.ProductID)
		if err != nil {
			return errCartItemNotFound
		}

		item.Quantity = query.Quantity
		itemID = item.ID
		return tx.Omit(clause.Associations).Save(&item).Error
	})
	if errors.Is(err, errCartItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	h.respondLine(c, itemID)
}

// GetItems lists the cart lines oldest first; a user with no cart has none.
func (h *CartHandler) GetItems(c *gin.Context) {
	items := []models.CartItem{}
	err := h.DB.Preload("Cart").Preload("Product").
		Joins("JOIN carritos ON carritos.carrito_id = carrito_items.carrito_id").
		Where("carritos.usuario_id = ?", c.Param("usuarioId")).
		Order("carrito_items.item_id ASC").
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetTotal answers the sum of price × quantity over the user's cart.
func (h *CartHandler) GetTotal(c *gin.Context) {
	var items []models.CartItem
	err := h.DB.Preload("Product").
		Joins("JOIN carritos ON carritos.carrito_id = carrito_items.carrito_id").
		Where("carritos.usuario_id = ?", c.Param("usuarioId")).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute total"})
		return
	}
	c.JSON(http.StatusOK, dtos.CartTotal{Total: models.SumSubtotals(items)})
}

// ClearCart removes every line of the user's cart. It is idempotent.
func (h *CartHandler) ClearCart(c *gin.Context) {
	cart, err := findCart(h.DB, c.Param("usuarioId"))
	if err == nil {
		err = h.DB.Where("carrito_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveItem deletes the productoId line whatever its quantity. It is
// idempotent.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var query cartLineQuery
	if !bindQuery(c, &query) {
		return
	}

	cart, err := findCart(h.DB, c.Param("usuarioId"))
	if err == nil {
		err = h.DB.Where("carrito_id = ? AND producto_id = ?", cart.ID, query.ProductID).Delete(&models.CartItem{}).Error
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		err = nil
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart"})
		return
	}
	c.Status(http.StatusNoContent)
}
