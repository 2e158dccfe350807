package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"weathermap.app/internal/core/mapview"
	"weathermap.app/internal/core/weather"
	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// CoordinatesQuery is a lat/lon pair taken from the query string
type CoordinatesQuery struct {
	Lat *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Lon *float64 `form:"lon" binding:"required,min=-180,max=180"`
}

// CoordinatesRequest is a lat/lon pair taken from a JSON body
type CoordinatesRequest struct {
	Lat *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" binding:"required,min=-180,max=180"`
}

// CenterRequest moves the map; zoom is optional
type CenterRequest struct {
	Lat  *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Lon  *float64 `json:"lon" binding:"required,min=-180,max=180"`
	Zoom *int     `json:"zoom" binding:"omitempty,min=0,max=19"`
}

// WeatherResponse is the snapshot returned by weather lookups
type WeatherResponse struct {
	Weather *weather.Snapshot `json:"weather"`
	IconURL string            `json:"iconUrl,omitempty"`
}

func (s *HTTPServerAdapter) weatherResponse(snapshot *weather.Snapshot) WeatherResponse {
	resp := WeatherResponse{Weather: snapshot}
	if cond, ok := snapshot.PrimaryCondition(); ok {
		resp.IconURL = s.dashboard.Weather().IconURL(cond.Icon)
	}
	return resp
}

// searchWeather handles GET /api/weather?city= requests
func (s *HTTPServerAdapter) searchWeather(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		s.handleError(c, errors.NewValidationError("city parameter is required"))
		return
	}

	s.logger.Debug("Searching weather", ports.F("city", city))
	snapshot, err := s.dashboard.Search(c.Request.Context(), city)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.weatherResponse(snapshot))
}

// getWeatherByCoordinates handles GET /api/weather/coordinates?lat=&lon= requests
func (s *HTTPServerAdapter) getWeatherByCoordinates(c *gin.Context) {
	var q CoordinatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.handleError(c, errors.NewValidationError("lat and lon must be valid coordinates"))
		return
	}

	snapshot, err := s.dashboard.Weather().FetchByCoordinates(c.Request.Context(), *q.Lat, *q.Lon)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.weatherResponse(snapshot))
}

// getForecast handles GET /api/weather/forecast?lat=&lon= requests
func (s *HTTPServerAdapter) getForecast(c *gin.Context) {
	var q CoordinatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.handleError(c, errors.NewValidationError("lat and lon must be valid coordinates"))
		return
	}

	forecast, err := s.dashboard.Weather().Forecast(c.Request.Context(), *q.Lat, *q.Lon)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}

func (s *HTTPServerAdapter) getWeatherState(c *gin.Context) {
	c.JSON(http.StatusOK, s.dashboard.Weather().State())
}

func (s *HTTPServerAdapter) clearWeatherError(c *gin.Context) {
	s.dashboard.Weather().ClearError()
	c.JSON(http.StatusOK, s.dashboard.Weather().State())
}

// MapResponse is the map state with its derived markers
type MapResponse struct {
	mapview.State
	Markers []mapview.Marker `json:"markers"`
}

func (s *HTTPServerAdapter) mapResponse() MapResponse {
	return MapResponse{State: s.dashboard.Map().State(), Markers: s.dashboard.Map().Markers()}
}

func (s *HTTPServerAdapter) getMap(c *gin.Context) {
	c.JSON(http.StatusOK, s.mapResponse())
}

// setMapCenter handles PUT /api/map/center requests
func (s *HTTPServerAdapter) setMapCenter(c *gin.Context) {
	var req CenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("lat and lon must be valid coordinates"))
		return
	}

	s.dashboard.Map().SetCenter(weather.Coordinates{Lat: *req.Lat, Lon: *req.Lon}, req.Zoom)
	c.JSON(http.StatusOK, s.mapResponse())
}

// mapClick handles POST /api/map/click requests
func (s *HTTPServerAdapter) mapClick(c *gin.Context) {
	var req CoordinatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.handleError(c, errors.NewValidationError("lat and lon must be valid coordinates"))
		return
	}

	if _, err := s.dashboard.MapClick(c.Request.Context(), *req.Lat, *req.Lon); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.mapResponse())
}

// centerToUser handles POST /api/map/locate requests
func (s *HTTPServerAdapter) centerToUser(c *gin.Context) {
	if _, err := s.dashboard.CenterToUser(c.Request.Context()); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.mapResponse())
}
