package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/roboarena/storefront-api/store"
)

// GET /orders/export
//
// Spreadsheet dump of all orders for the fulfillment team, one row per line
// item so frozen prices stay visible.
func ExportOrdersToExcel(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := s.Orders()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderID", "FullName", "PhoneNumber", "Address", "Location",
			"Status", "ProductID", "Price", "Quantity", "LineTotal",
			"OrderTotal", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for i := range orders {
			order := &orders[i]
			total := order.TotalPrice()
			for _, item := range order.Items {
				row := sheet.AddRow()
				row.AddCell().SetValue(order.ID)
				row.AddCell().SetValue(order.FullName)
				row.AddCell().SetValue(order.PhoneNumber)
				row.AddCell().SetValue(order.Address)
				row.AddCell().SetValue(order.Location)
				row.AddCell().SetValue(string(order.Status))
				row.AddCell().SetValue(strconv.Itoa(int(item.ProductID)))
				row.AddCell().SetValue(item.Price.StringFixed(2))
				row.AddCell().SetValue(item.Quantity)
				row.AddCell().SetValue(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2))
				row.AddCell().SetValue(total.StringFixed(2))
				row.AddCell().SetValue(order.CreatedAt.Format("2006-01-02 15:04:05"))
			}
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
