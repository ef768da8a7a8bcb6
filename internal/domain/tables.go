package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Catalog
	&Product{},
	&Order{},
	// Notifications
	&NotificationRecord{},
}
