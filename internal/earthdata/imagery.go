package earthdata

import (
	"net/url"
	"strconv"

	"terrafarm-server/shared/models"
)

const gibsWMSEndpoint = "https://gibs.earthdata.nasa.gov/wms/epsg4326/best/wms.cgi"

// Слои NASA GIBS. True Color доступен с задержкой в сутки,
// 8-дневные композиты NDVI и температуры - с задержкой в 8 дней.
const (
	layerTrueColor   = "VIIRS_SNPP_CorrectedReflectance_TrueColor"
	layerNDVI        = "MODIS_Terra_NDVI_8Day"
	layerSurfaceTemp = "MODIS_Terra_Land_Surface_Temp_Day"

	trueColorLagDays = 1
	compositeLagDays = 8

	imageBufferDegrees = 2.0
	imageSizePixels    = "512"
)

// SatelliteImages строит WMS-ссылки на три слоя снимков вокруг точки.
// Пустая date означает самые свежие доступные данные каждого слоя.
func (p *Provider) SatelliteImages(lat, lon float64, date string) models.SatelliteImages {
	now := p.now()

	trueColorDate := date
	if trueColorDate == "" {
		trueColorDate = now.AddDate(0, 0, -trueColorLagDays).Format("2006-01-02")
	}
	compositeDate := now.AddDate(0, 0, -compositeLagDays).Format("2006-01-02")

	return models.SatelliteImages{
		TrueColor:   wmsURL(lat, lon, layerTrueColor, trueColorDate),
		NDVI:        wmsURL(lat, lon, layerNDVI, compositeDate),
		Temperature: wmsURL(lat, lon, layerSurfaceTemp, compositeDate),
	}
}

func wmsURL(lat, lon float64, layer, date string) string {
	bbox := formatBBox(lat, lon, imageBufferDegrees)

	params := url.Values{}
	params.Set("SERVICE", "WMS")
	params.Set("REQUEST", "GetMap")
	params.Set("VERSION", "1.3.0")
	params.Set("LAYERS", layer)
	params.Set("CRS", "EPSG:4326")
	params.Set("BBOX", bbox)
	params.Set("WIDTH", imageSizePixels)
	params.Set("HEIGHT", imageSizePixels)
	params.Set("FORMAT", "image/jpeg")
	params.Set("TIME", date)

	return gibsWMSEndpoint + "?" + params.Encode()
}

// formatBBox собирает WMS bounding box "minLon,minLat,maxLon,maxLat"
// вокруг точки с буфером в градусах.
func formatBBox(lat, lon, buffer float64) string {
	coord := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return coord(lon-buffer) + "," + coord(lat-buffer) + "," +
		coord(lon+buffer) + "," + coord(lat+buffer)
}
