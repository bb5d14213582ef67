package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinedash-api/internal/application/service"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinedash-api/internal/presentation/http/dto/response"
	"github.com/sangkips/dinedash-api/internal/presentation/http/middleware"
	"github.com/sangkips/dinedash-api/pkg/pagination"
)

// GetRole extracts the access role from the Gin context
func GetRole(c *gin.Context) enum.UserRole {
	value, exists := c.Get(middleware.RoleKey)
	if !exists {
		return ""
	}
	role, _ := value.(enum.UserRole)
	return role
}

// bindJSON binds the request body and writes a 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return false
	}
	return true
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

func cartLines(items []request.CartLineRequest) []service.CartLine {
	lines := make([]service.CartLine, len(items))
	for i, it := range items {
		lines[i] = service.CartLine{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
			Note:       it.Note,
		}
	}
	return lines
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
