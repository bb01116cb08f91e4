package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (api *API) GetHome(ctx *gin.Context) {
	message := `Welcome to FarmLink API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/signup" - Create user account
- POST "/login" - Access user account
- GET "/users/:id" - Get user profile
- PUT "/users/:id" - Update user profile

PRODUCT
- POST "/add-product" - Create new product (farm owner)
- PUT "/update-product/:id" - Update product
- GET "/get-products" - List products with sort and search
- GET "/get-product/:identifier" - Get product by id or name
- GET "/get-my-products/:userId" - List a farm owner's products
- DELETE "/delete-product/:id" - Delete product

ORDER
- POST "/place-order" - Place an order from a cart
- GET "/get-my-orders/:customerId" - Customer order history
- GET "/get-farmowner-orders/:userId" - Farm owner order management
- PUT "/update-order-status/:id" - Approve, cancel or deliver an order

DELIVERY
- GET "/get-deliverymen" - List active deliverymen
- GET "/get-delivery-orders/:deliverymanId" - Orders assigned to a deliveryman
- PUT "/deliveryman/update-order/:orderId" - Mark an order as delivered
- GET "/deliveryman/stats/:id" - Delivery stats and earnings
- GET "/deliveryman/earnings/:id" - Current earnings
- GET/PUT "/deliveryman/profile/:id" - Deliveryman profile

REVIEWS & REPORTS
- POST "/reviews" - Review a delivered product
- GET "/reviews/:productId" - Product reviews
- POST "/feedback" - Send feedback
- POST "/report" - Report a farm owner

ADMIN
- GET "/admin/stats" - Entity counts
- GET/DELETE "/admin/users" - Manage users
- PUT "/admin/users/restrict/:id" - Restrict or unblock a user
- GET/DELETE "/admin/products" - Manage products
- GET/DELETE "/admin/orders" - Manage orders
- GET/DELETE "/admin/reports" - Manage reports
- GET/DELETE "/admin/feedbacks" - Manage feedback`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
