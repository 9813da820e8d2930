// Package stac holds the scene model returned by the catalog: STAC Items
// (GeoJSON Features) with their links and assets.
//
// Members the catalog sends that this package does not model are kept in
// AdditionalFields and written back on marshaling, so a decoded scene can
// be saved without losing data.
//
//	var item stac.Item
//	json.Unmarshal(data, &item)
//
//	fmt.Println(item.Id)
//	if tile, ok := item.AdditionalFields["tile"]; ok {
//	    fmt.Println(tile)
//	}
package stac
