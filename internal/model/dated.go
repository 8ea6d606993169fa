package model

// RecordDate 实现 scoring.Dated
func (r SalesRecord) RecordDate() string { return r.Date }

// RecordDate 实现 scoring.Dated
func (r PurchaseRecord) RecordDate() string { return r.Date }

// RecordDate 实现 scoring.Dated
func (r LaborRecord) RecordDate() string { return r.Date }

// RecordDate 实现 scoring.Dated
func (r UtilityRecord) RecordDate() string { return r.Date }

// RecordDate 实现 scoring.Dated
func (r ProductionRecord) RecordDate() string { return r.Date }

// RecordDate 实现 scoring.Dated
func (r InventorySnapshot) RecordDate() string { return r.Date }
