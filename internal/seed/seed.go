// Package seed writes the default store data into empty collections.
package seed

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/simp-lee/storeadmin/internal/catalog"
	"github.com/simp-lee/storeadmin/internal/domain"
)

// Target is a store that seed data can be written to.
type Target interface {
	domain.CollectionStore
	domain.DocumentStore
}

// batchSaver is implemented by stores that can replace several collections
// in one write.
type batchSaver interface {
	SaveAll(ctx context.Context, collections map[string][]domain.Record) error
}

// Result lists what Run wrote and what it left alone.
type Result struct {
	Seeded  []string `json:"seeded"`
	Skipped []string `json:"skipped"`
}

// Run writes Collections(now) into every empty collection and the default
// settings when no settings exist. Collections that already hold records are
// never touched.
func Run(ctx context.Context, target Target, now time.Time, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res := &Result{}
	pending := make(map[string][]domain.Record)
	for name, records := range Collections(now) {
		existing, err := target.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		pending[name] = records
		res.Seeded = append(res.Seeded, name)
	}

	if err := saveCollections(ctx, target, pending); err != nil {
		return nil, err
	}

	doc, err := target.LoadDocument(ctx, catalog.SettingsDocument)
	if err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		if _, err := target.SaveDocument(ctx, catalog.SettingsDocument, Settings()); err != nil {
			return nil, err
		}
		res.Seeded = append(res.Seeded, catalog.SettingsDocument)
	} else {
		res.Skipped = append(res.Skipped, catalog.SettingsDocument)
	}

	slices.Sort(res.Seeded)
	slices.Sort(res.Skipped)
	logger.InfoContext(ctx, "seed completed",
		slog.Any("seeded", res.Seeded),
		slog.Any("skipped", res.Skipped),
	)
	return res, nil
}

func saveCollections(ctx context.Context, target Target, pending map[string][]domain.Record) error {
	if len(pending) == 0 {
		return nil
	}
	if b, ok := target.(batchSaver); ok {
		return b.SaveAll(ctx, pending)
	}
	for name, records := range pending {
		if err := target.Save(ctx, name, records); err != nil {
			return err
		}
	}
	return nil
}

// Settings returns the default settings document.
func Settings() domain.Record {
	return domain.Record{
		"storeName":           "Tataibari Store",
		"supportEmail":        "support@tataibari.com",
		"supportPhone":        "+1-800-TATAIBARI",
		"qrCodeImage":         "",
		"paymentInstructions": "Scan QR code and complete payment. Share transaction ID.",
		"deliveryCharge":      5.99,
		"maintenanceMode":     false,
	}
}

// Collections returns the default records of every collection, with
// timestamps relative to now.
func Collections(now time.Time) map[string][]domain.Record {
	ago := func(d time.Duration) string { return domain.FormatTime(now.Add(-d)) }
	day := 24 * time.Hour
	stamp := domain.FormatTime(now)

	return map[string][]domain.Record{
		catalog.Orders: {
			order(1, "John Doe", "john@example.com", "+1234567890", 299.99, catalog.StatusProcessing, "QR12345678",
				item(1, "Premium Laptop", 299.99, 1), ago(day)),
			order(2, "Jane Smith", "jane@example.com", "+1987654321", 59.99, catalog.StatusDelivered, "QR87654321",
				item(2, "Wireless Mouse", 29.99, 2), ago(2*day)),
			order(3, "Bob Johnson", "bob@example.com", "+1555666777", 149.99, catalog.StatusShipped, "QR11223344",
				item(3, "Bluetooth Headphones", 149.99, 1), ago(3*day)),
			order(4, "Alice Brown", "alice@example.com", "+1444555666", 79.99, catalog.StatusReceived, "QR55667788",
				item(4, "USB Cable", 19.99, 4), ago(4*day)),
		},
		catalog.Products: {
			product(1, "Premium Laptop",
				"High-performance laptop for professionals with latest Intel processor and 16GB RAM",
				299.99, 15, "https://images.pexels.com/photos/18105/pexels-photo.jpg?auto=compress&cs=tinysrgb&w=800",
				"Premium Laptop - High Performance Computing",
				"Professional laptop with Intel processor, 16GB RAM, perfect for work and gaming",
				"laptop, computer, intel, professional, gaming", stamp),
			product(2, "Wireless Mouse",
				"Ergonomic wireless mouse with long battery life and precision tracking",
				29.99, 50, "https://images.pexels.com/photos/2115257/pexels-photo-2115257.jpeg?auto=compress&cs=tinysrgb&w=800",
				"Wireless Mouse - Ergonomic Design",
				"Comfortable wireless mouse with precision tracking and long battery life",
				"mouse, wireless, ergonomic, computer accessory", stamp),
			product(3, "Bluetooth Headphones",
				"Premium noise-cancelling Bluetooth headphones with superior sound quality",
				149.99, 25, "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg?auto=compress&cs=tinysrgb&w=800",
				"Bluetooth Headphones - Premium Audio",
				"Noise-cancelling Bluetooth headphones with superior sound quality and comfort",
				"headphones, bluetooth, noise-cancelling, audio", stamp),
		},
		catalog.Categories: {
			category(1, "Electronics", "Electronic devices and accessories",
				"Electronics - Latest Tech Gadgets", "Discover the latest electronic devices and tech accessories",
				"electronics, gadgets, technology, devices", stamp),
			category(2, "Clothing", "Fashion and apparel",
				"Clothing - Fashion & Apparel", "Trendy clothing and fashion accessories for all occasions",
				"clothing, fashion, apparel, style", stamp),
			category(3, "Home & Garden", "Home improvement and garden supplies",
				"Home & Garden - Improve Your Space", "Quality home improvement and garden supplies for your space",
				"home, garden, improvement, supplies", stamp),
		},
		catalog.Users: {
			user(1, "John Doe", "john@example.com", "+1234567890", 3, 599.97, ago(30*day)),
			user(2, "Jane Smith", "jane@example.com", "+1987654321", 1, 59.99, ago(20*day)),
		},
		catalog.Logs: {
			logEntry(1, "192.168.1.100", "/admin/dashboard", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36", ago(time.Hour)),
			logEntry(2, "192.168.1.101", "/admin/products", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36", ago(2*time.Hour)),
			logEntry(3, "192.168.1.102", "/admin/orders", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36", ago(3*time.Hour)),
		},
		catalog.Media: {
			mediaItem(1, "laptop-hero.jpg", 245760, "https://images.pexels.com/photos/18105/pexels-photo.jpg?auto=compress&cs=tinysrgb&w=800", stamp),
			mediaItem(2, "mouse-wireless.jpg", 189440, "https://images.pexels.com/photos/2115257/pexels-photo-2115257.jpeg?auto=compress&cs=tinysrgb&w=800", stamp),
			mediaItem(3, "headphones-premium.jpg", 312580, "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg?auto=compress&cs=tinysrgb&w=800", stamp),
		},
		catalog.Notifications: {
			notification(1, "New Order Received", "Order #1001 has been placed by John Doe", "order", false, ago(time.Hour)),
			notification(2, "Low Stock Alert", "Wireless Mouse is running low on stock (5 units remaining)", "stock", false, ago(2*time.Hour)),
			notification(3, "Payment Received", "Payment for Order #1000 has been confirmed", "payment", true, ago(3*time.Hour)),
			notification(4, "New User Registration", "Jane Smith has registered as a new user", "user", true, ago(4*time.Hour)),
			notification(5, "Product Review", "Premium Laptop received a 5-star review", "review", true, ago(5*time.Hour)),
		},
		catalog.Pages: {
			page(1, "About Us", "about-us",
				"<h1>About Tataibari Store</h1><p>We are a leading online retailer...</p>",
				"About Us - Tataibari Store", "Learn more about Tataibari Store and our mission", stamp),
			page(2, "Privacy Policy", "privacy-policy",
				"<h1>Privacy Policy</h1><p>Your privacy is important to us...</p>",
				"Privacy Policy - Tataibari Store", "Read our privacy policy and data protection practices", stamp),
		},
	}
}

func item(id int, name string, price float64, qty int) map[string]any {
	return map[string]any{"id": id, "name": name, "price": price, "quantity": qty}
}

func order(id int, name, email, phone string, total float64, status, paymentID string, it map[string]any, createdAt string) domain.Record {
	return domain.Record{
		"id":            id,
		"customerName":  name,
		"customerEmail": email,
		"customerPhone": phone,
		"total":         total,
		"status":        status,
		"paymentId":     paymentID,
		"items":         []any{it},
		"createdAt":     createdAt,
	}
}

func product(id int, name, desc string, price float64, stock int, image, metaTitle, metaDesc, keywords, createdAt string) domain.Record {
	return domain.Record{
		"id":              id,
		"name":            name,
		"description":     desc,
		"price":           price,
		"stock":           stock,
		"category":        "Electronics",
		"image":           image,
		"metaTitle":       metaTitle,
		"metaDescription": metaDesc,
		"metaKeywords":    keywords,
		"createdAt":       createdAt,
	}
}

func page(id int, title, slug, content, metaTitle, metaDesc, createdAt string) domain.Record {
	return domain.Record{
		"id":              id,
		"title":           title,
		"slug":            slug,
		"content":         content,
		"metaTitle":       metaTitle,
		"metaDescription": metaDesc,
		"published":       true,
		"createdAt":       createdAt,
	}
}

func category(id int, name, desc, metaTitle, metaDesc, keywords, createdAt string) domain.Record {
	return domain.Record{
		"id":              id,
		"name":            name,
		"description":     desc,
		"metaTitle":       metaTitle,
		"metaDescription": metaDesc,
		"metaKeywords":    keywords,
		"createdAt":       createdAt,
	}
}

func user(id int, name, email, phone string, orders int, spent float64, createdAt string) domain.Record {
	return domain.Record{
		"id":         id,
		"name":       name,
		"email":      email,
		"phone":      phone,
		"orderCount": orders,
		"totalSpent": spent,
		"createdAt":  createdAt,
	}
}

func logEntry(id int, ip, page, ua, ts string) domain.Record {
	return domain.Record{
		"id":        id,
		"ip":        ip,
		"page":      page,
		"userAgent": ua,
		"timestamp": ts,
		"createdAt": ts,
	}
}

func mediaItem(id int, name string, size int, url, createdAt string) domain.Record {
	return domain.Record{
		"id":           id,
		"name":         name,
		"originalName": name,
		"size":         size,
		"type":         "image/jpeg",
		"folder":       "products",
		"url":          url,
		"createdAt":    createdAt,
	}
}

func notification(id int, title, msg, typ string, read bool, createdAt string) domain.Record {
	return domain.Record{
		"id":        id,
		"title":     title,
		"message":   msg,
		"type":      typ,
		"read":      read,
		"createdAt": createdAt,
	}
}
