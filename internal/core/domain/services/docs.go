// Package services provides domain services that implement rules spanning more
// than one aggregate of the delivery marketplace.
//
// The package includes:
//   - PricingCalculator: derives distance and price of a delivery route
//   - AccessPolicy: decides which actors may see or act on a delivery request
//   - DriverDispatcher: picks the nearest free driver for automatic assignment
package services
