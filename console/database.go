package console

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

func GetCustomers(db *gorm.DB) ([]Customer, error) {
	var customers []Customer
	err := db.Find(&customers).Error
	return customers, err
}

func FindSubscriptionByDomain(db *gorm.DB, domain string) (*Subscription, error) {
	var sub Subscription
	err := db.Where(&Subscription{Domain: domain}).Preload("Customer").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	return &sub, err
}

// ActiveSubscriptions returns every subscription still inside its term,
// with customer contacts preloaded.
func ActiveSubscriptions(db *gorm.DB, now time.Time) ([]Subscription, error) {
	var subs []Subscription
	err := db.Where("deactivated = 0 AND expiredAt > ?", now).
		Preload("Customer").
		Find(&subs).Error
	return subs, err
}
