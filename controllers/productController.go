package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Kagaba/farmlink-api/models"
	"github.com/Kagaba/farmlink-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// productSortColumns whitelists the sort keys the storefront sends.
var productSortColumns = map[string]string{
	"newest":     "p.id DESC",
	"oldest":     "p.id ASC",
	"price_low":  "p.price ASC",
	"price_high": "p.price DESC",
	"name_az":    "p.name ASC",
	"name_za":    "p.name DESC",
}

// ProductWithOwner is a product row joined with its owner's display fields.
type ProductWithOwner struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"userId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	OwnerEmail  string          `json:"owner_email"`
	OwnerName   string          `json:"ownerName"`
	CreatedAt   time.Time       `json:"createdAt"`
}

const productWithOwnerSelect = `
		SELECT p.id, p.user_id, p.name, p.price, p.description, p.image,
		       p.owner_email, p.created_at, u.fullname AS owner_name
		FROM products p
		LEFT JOIN users u ON p.user_id = u.id
		WHERE p.deleted_at IS NULL`

// AddProduct creates a product from a multipart form. The image is written
// to local disk first; if the row insert fails the file is removed again so
// no orphan is left behind.
func (api *API) AddProduct(ctx *gin.Context) {
	name := ctx.PostForm("name")
	priceStr := ctx.PostForm("price")
	description := ctx.PostForm("description")
	userIdStr := ctx.PostForm("userId")

	file, err := ctx.FormFile("image")
	if name == "" || priceStr == "" || description == "" || userIdStr == "" || err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "All fields including image are required")
		return
	}

	userId, err := strconv.Atoi(userIdStr)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid userId")
		return
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid price")
		return
	}

	var owner models.User
	if err := api.DB.First(&owner, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Owner user not found")
		} else {
			log.Println("Owner lookup error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to resolve owner email")
		}
		return
	}

	imageUrl, err := utils.SaveUpload(ctx, file, api.UploadDir)
	if err != nil {
		log.Println("Upload error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save image")
		return
	}

	product := models.Product{
		UserID:      uint(userId),
		Name:        name,
		Price:       price,
		Description: description,
		Image:       imageUrl,
		OwnerEmail:  owner.Email,
	}
	if err := api.DB.Create(&product).Error; err != nil {
		utils.RemoveUpload(imageUrl, api.UploadDir)
		log.Println("Product creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to add product")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Product added successfully!",
		"image":   imageUrl,
	})
}

// UpdateProduct updates a product; the image is only replaced when a new
// file is part of the form.
func (api *API) UpdateProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := api.DB.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	updates := map[string]any{}
	if name := ctx.PostForm("name"); name != "" {
		updates["name"] = name
	}
	if priceStr := ctx.PostForm("price"); priceStr != "" {
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid price")
			return
		}
		updates["price"] = price
	}
	if description := ctx.PostForm("description"); description != "" {
		updates["description"] = description
	}
	if ownerEmail := ctx.PostForm("owner_email"); ownerEmail != "" {
		updates["owner_email"] = ownerEmail
	}

	if file, err := ctx.FormFile("image"); err == nil {
		imageUrl, err := utils.SaveUpload(ctx, file, api.UploadDir)
		if err != nil {
			log.Println("Upload error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save image")
			return
		}
		updates["image"] = imageUrl
	}

	if err := api.DB.Model(&product).Updates(updates).Error; err != nil {
		log.Println("Product update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update product")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product updated successfully!"})
}

// GetProducts lists products with the storefront's sort keys and substring
// search over name, description and id.
func (api *API) GetProducts(ctx *gin.Context) {
	orderBy, ok := productSortColumns[ctx.DefaultQuery("sort", "newest")]
	if !ok {
		orderBy = productSortColumns["newest"]
	}

	query := productWithOwnerSelect
	params := []any{}

	if search := ctx.Query("search"); search != "" {
		query += " AND (p.name LIKE ? OR p.description LIKE ? OR p.id = ?)"
		searchTerm := "%" + search + "%"
		searchId, err := strconv.Atoi(search)
		if err != nil {
			searchId = -1
		}
		params = append(params, searchTerm, searchTerm, searchId)
	}

	query += " ORDER BY " + orderBy

	var products []ProductWithOwner
	if err := api.DB.Raw(query, params...).Scan(&products).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// GetProduct resolves a numeric identifier to a single product and anything
// else to a name substring match returning a list.
func (api *API) GetProduct(ctx *gin.Context) {
	identifier := ctx.Param("identifier")

	if productId, err := strconv.Atoi(identifier); err == nil {
		var product ProductWithOwner
		result := api.DB.Raw(productWithOwnerSelect+" AND p.id = ?", productId).Scan(&product)
		if result.Error != nil {
			log.Println("Database error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		if result.RowsAffected == 0 {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
			return
		}
		ctx.JSON(http.StatusOK, product)
		return
	}

	var products []ProductWithOwner
	result := api.DB.Raw(productWithOwnerSelect+" AND p.name LIKE ?", "%"+identifier+"%").Scan(&products)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if len(products) == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}
	ctx.JSON(http.StatusOK, products)
}

func (api *API) GetMyProducts(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var products []models.Product
	if err := api.DB.Where("user_id = ?", userId).Find(&products).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	ctx.JSON(http.StatusOK, products)
}

func (api *API) DeleteProduct(ctx *gin.Context) {
	productId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := api.DB.Delete(&models.Product{}, productId).Error; err != nil {
		log.Println("Delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
