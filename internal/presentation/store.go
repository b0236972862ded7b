package presentation

import (
	"fmt"
	"strconv"

	"github.com/yigit/classpoints/internal/app/models"
)

// RenderShop lists the catalog. When student is set, items they cannot afford are marked.
func RenderShop(styles Styles, items []*models.StoreItem, student *models.Student) string {
	title := "Shop"
	if student != nil {
		title = fmt.Sprintf("Shop (%s, %d pts)", student.Name, student.Points)
	}

	table := NewTable(title, "Key", "Name", "Type", "Cost", "")
	for _, item := range items {
		note := ""
		if student != nil {
			switch {
			case item.Type == models.ItemTypeSkin && student.Skin == item.KeyName,
				item.Type == models.ItemTypeTitle && student.Title == item.Name:
				note = styles.Success.Render("equipped")
			case student.Points < item.Cost:
				note = styles.Muted.Render(fmt.Sprintf("need %d more", item.Cost-student.Points))
			}
		}
		table.AddRow(item.KeyName, item.Name, string(item.Type), strconv.Itoa(item.Cost), note)
	}
	return table.View(styles)
}

// RenderPurchases lists purchase history
func RenderPurchases(styles Styles, purchases []*models.Purchase) string {
	table := NewTable("Purchases", "When", "Item", "Type", "Cost")
	for _, p := range purchases {
		table.AddRow(p.PurchasedAt.Local().Format("2006-01-02 15:04"), p.ItemName, string(p.ItemType), strconv.Itoa(p.ItemCost))
	}
	return table.View(styles)
}

// RenderHistory lists check-ins, newest first
func RenderHistory(styles Styles, records []*models.AttendanceRecord) string {
	table := NewTable("Attendance history", "Date", "Time", "Status", "Points")
	for _, rec := range records {
		table.AddRow(rec.Date, rec.Time, statusStyle(styles, rec.Status).Render(string(rec.Status)), "+"+strconv.Itoa(rec.Points))
	}
	return table.View(styles)
}

// RenderStudent shows a single student's balance and cosmetics
func RenderStudent(styles Styles, student *models.Student) string {
	table := NewTable("", "ID", "Name", "Points", "Skin", "Title")
	table.AddRow(strconv.FormatInt(student.ID, 10), student.Name, strconv.Itoa(student.Points), student.Skin, student.Title)
	return table.View(styles)
}

// Result renders a one-line outcome
func Result(styles Styles, success bool, message string) string {
	if success {
		return styles.Success.Render("✔ " + message)
	}
	return styles.Error.Render("✘ " + message)
}
