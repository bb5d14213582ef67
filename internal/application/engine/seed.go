package engine

import (
	"fmt"

	"github.com/sangkips/dinedash-api/internal/domain/entity"
	"github.com/sangkips/dinedash-api/internal/domain/enum"
)

// DefaultState returns the state a fresh installation starts from.
// Auth hashes are left empty; the auth service fills them on first boot.
func DefaultState() *State {
	return &State{
		Menu:      DefaultMenu(),
		Orders:    []entity.Order{},
		Tables:    DefaultTables(),
		Inventory: DefaultInventory(),
		Rooms:     DefaultRooms(),
		Bookings:  []entity.Booking{},
		Staff:     DefaultStaff(),
		Payouts:   []entity.Payout{},
		Held:      []entity.HeldCart{},
	}
}

func DefaultInventory() []entity.InventoryItem {
	return []entity.InventoryItem{
		{ID: "inv1", Name: "Basmati Rice", Stock: 50, Unit: "kg", MinLevel: 10, CostPrice: 90},
		{ID: "inv2", Name: "Paneer", Stock: 15, Unit: "kg", MinLevel: 2, CostPrice: 400},
		{ID: "inv3", Name: "Chicken", Stock: 20, Unit: "kg", MinLevel: 5, CostPrice: 220},
		{ID: "inv4", Name: "Milk", Stock: 10, Unit: "L", MinLevel: 5, CostPrice: 60},
		{ID: "inv5", Name: "Onions", Stock: 100, Unit: "kg", MinLevel: 20, CostPrice: 30},
		{ID: "inv6", Name: "Butter", Stock: 8, Unit: "kg", MinLevel: 2, CostPrice: 550},
		{ID: "inv7", Name: "Spices Mix", Stock: 5, Unit: "kg", MinLevel: 1, CostPrice: 800},
	}
}

func DefaultMenu() []entity.MenuItem {
	return []entity.MenuItem{
		{ID: "1", Name: "Paneer Butter Masala", Category: "Main Course", Price: 280, IsVeg: true, TaxRate: 5,
			Recipe: []entity.RecipeItem{{InventoryID: "inv2", Quantity: 0.2}, {InventoryID: "inv6", Quantity: 0.05}}},
		{ID: "2", Name: "Chicken Biryani", Category: "Main Course", Price: 350, TaxRate: 5,
			Recipe: []entity.RecipeItem{{InventoryID: "inv1", Quantity: 0.3}, {InventoryID: "inv3", Quantity: 0.25}}},
		{ID: "3", Name: "Garlic Naan", Category: "Breads", Price: 60, IsVeg: true, TaxRate: 5},
		{ID: "4", Name: "Veg Manchurian", Category: "Starters", Price: 180, IsVeg: true, TaxRate: 5},
		{ID: "5", Name: "Cold Coffee", Category: "Beverages", Price: 120, IsVeg: true, TaxRate: 12,
			Recipe: []entity.RecipeItem{{InventoryID: "inv4", Quantity: 0.25}}},
		{ID: "6", Name: "Tandoori Roti", Category: "Breads", Price: 30, IsVeg: true, TaxRate: 5},
		{ID: "7", Name: "Dal Makhani", Category: "Main Course", Price: 220, IsVeg: true, TaxRate: 5,
			Recipe: []entity.RecipeItem{{InventoryID: "inv6", Quantity: 0.03}}},
		{ID: "8", Name: "Chicken 65", Category: "Starters", Price: 240, TaxRate: 5,
			Recipe: []entity.RecipeItem{{InventoryID: "inv3", Quantity: 0.2}}},
	}
}

func DefaultTables() []entity.Table {
	tables := make([]entity.Table, 12)
	for i := range tables {
		capacity := 4
		if i%3 == 0 {
			capacity = 2
		}
		tables[i] = entity.Table{
			ID:       fmt.Sprintf("t%d", i+1),
			Number:   i + 1,
			Capacity: capacity,
			Status:   enum.TableStatusVacant,
		}
	}
	return tables
}

func DefaultRooms() []entity.Room {
	return []entity.Room{
		{ID: "r101", Number: "101", Type: enum.RoomTypeStandard, Floor: 1, Price: 2500},
		{ID: "r102", Number: "102", Type: enum.RoomTypeStandard, Floor: 1, Price: 2500},
		{ID: "r201", Number: "201", Type: enum.RoomTypeDeluxe, Floor: 2, Price: 4500},
		{ID: "r202", Number: "202", Type: enum.RoomTypeDeluxe, Floor: 2, Price: 4500},
		{ID: "r301", Number: "301", Type: enum.RoomTypeSuite, Floor: 3, Price: 8500},
	}
}

func DefaultStaff() []entity.Staff {
	return []entity.Staff{
		{ID: "s1", Name: "Rahul Sharma", Role: enum.StaffRoleChef, Phone: "+91 9999911111", Status: enum.StaffActive,
			Salary: 45000, PaidHolidays: 12, HolidaysTaken: 2, Attendance: []entity.AttendanceRecord{}},
		{ID: "s2", Name: "Priya Singh", Role: enum.StaffRoleReceptionist, Phone: "+91 9999922222", Status: enum.StaffActive,
			Salary: 32000, PaidHolidays: 15, HolidaysTaken: 1, Attendance: []entity.AttendanceRecord{}},
		{ID: "s3", Name: "Amit Kumar", Role: enum.StaffRoleWaiter, Phone: "+91 9999933333", Status: enum.StaffActive,
			Salary: 18000, PaidHolidays: 10, HolidaysTaken: 4, Attendance: []entity.AttendanceRecord{}},
	}
}
