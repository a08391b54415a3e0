package email

import (
	"fmt"
	"strings"

	"pantrybook/internal/models"
)

func (s *Service) generateShoppingListHTML(user *models.User, list *models.ShoppingList) string {
	var rows strings.Builder
	for _, item := range list.Items {
		status := ""
		if item.Purchased {
			status = "✓"
		}
		rows.WriteString(fmt.Sprintf(`
            <tr>
                <td>%s</td>
                <td>%.2f %s</td>
                <td>%.2f</td>
                <td style="text-align: center;">%s</td>
            </tr>`, item.IngredientName, item.Quantity, item.Unit, item.EstimatedPrice, status))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Your Shopping List</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .container {
            background-color: white;
            padding: 40px;
            border-radius: 12px;
            box-shadow: 0 2px 10px rgba(0, 0, 0, 0.1);
        }
        .header {
            text-align: center;
            margin-bottom: 30px;
        }
        .logo {
            font-size: 28px;
            font-weight: bold;
            color: #2d5e3e;
            margin-bottom: 10px;
        }
        table {
            width: 100%%;
            border-collapse: collapse;
            margin-bottom: 20px;
        }
        th, td {
            padding: 8px 12px;
            border-bottom: 1px solid #e9ecef;
            text-align: left;
        }
        th {
            color: #2d5e3e;
        }
        .totals {
            font-size: 16px;
            font-weight: 500;
            margin-top: 20px;
        }
        .footer {
            margin-top: 40px;
            padding-top: 20px;
            border-top: 1px solid #e9ecef;
            font-size: 14px;
            color: #6c757d;
            text-align: center;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="logo">Pantrybook</div>
            <div>Hi %s, here is your shopping list.</div>
        </div>

        <table>
            <tr>
                <th>Ingredient</th>
                <th>Quantity</th>
                <th>Est. price</th>
                <th>Bought</th>
            </tr>%s
        </table>

        <div class="totals">
            <p>%d items, estimated total %.2f</p>
        </div>

        <div class="footer">
            <p>The Pantrybook Team</p>
            <p style="margin-top: 20px; font-size: 12px;">
                This email was sent to %s.
            </p>
        </div>
    </div>
</body>
</html>`, user.Username, rows.String(), list.TotalItems, list.TotalPrice, user.Email)
}

func (s *Service) generateShoppingListText(user *models.User, list *models.ShoppingList) string {
	var lines strings.Builder
	for _, item := range list.Items {
		status := "[ ]"
		if item.Purchased {
			status = "[x]"
		}
		lines.WriteString(fmt.Sprintf("%s %s: %.2f %s (est. %.2f)\n",
			status, item.IngredientName, item.Quantity, item.Unit, item.EstimatedPrice))
	}

	return fmt.Sprintf(`Hi %s,

Here is your shopping list:

%s
%d items, estimated total %.2f

The Pantrybook Team

---
This email was sent to %s.`, user.Username, lines.String(), list.TotalItems, list.TotalPrice, user.Email)
}
