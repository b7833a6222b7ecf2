//
// Package measurements generates the "1 Billion Row Challenge" input file:
// lines of `<station>;<temperature>` written to a flat text file in batches.
//
// Quick start:
//
//	// Load reference stations
//	table, _ := stations.Load("data/weather_stations.csv")
//
//	// Create batch writer to write to file
//	writer, _ := NewWriter(logger, "datasets/measurements.txt", nil)
//
//	// Specify how much data to generate and go
//	generator, _ := NewGenerator(logger, DefaultGeneratorConfig(1000000))
//	generator.Generate(ctx, writer, table)
package measurements
