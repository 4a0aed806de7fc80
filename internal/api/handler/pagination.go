package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
)

func paginationFromQuery(c *gin.Context) dto.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(dto.DefaultPageSize)))
	return dto.Pagination{Page: page, PageSize: pageSize}.Normalize()
}
