package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ellypaws/controlnet-api/pkg/annotator"
	"github.com/ellypaws/controlnet-api/pkg/api/cache"
	"github.com/ellypaws/controlnet-api/pkg/api/entities"
	"github.com/ellypaws/controlnet-api/pkg/crashy"
	"github.com/ellypaws/controlnet-api/pkg/models"
)

// ModelNames returns the conditioning model display names, from cache unless
// update forces a rescan of the model directories.
func ModelNames(c echo.Context, cacheToUse cache.Cache, registry *models.Registry, update bool) ([]string, error) {
	key := fmt.Sprintf("%s:controlnet:model_list", echo.MIMEApplicationJSON)

	if !update {
		item, err := cacheToUse.Get(key)
		if err == nil {
			var names []string
			if err := json.Unmarshal(item.Blob, &names); err == nil {
				c.Logger().Debugf("Cache hit for %s", key)
				return names, nil
			}
			c.Logger().Warnf("error unmarshaling cached model list: %v", err)
		}
	}

	var names []string
	var err error
	if update {
		names, err = registry.Update()
	} else {
		names, err = registry.Names()
	}
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, crashy.Wrap(err))
		return nil, err
	}

	blob, err := json.Marshal(names)
	if err != nil {
		return names, nil
	}
	if err := cacheToUse.Set(key, &cache.Item{
		Blob:     blob,
		MimeType: echo.MIMEApplicationJSON,
	}, cache.Day); err != nil {
		c.Logger().Errorf("error caching model list: %v", err)
	}

	return names, nil
}

// controlGroups maps a control type to the preprocessor modules it offers and
// the token a model filename must carry to belong to it.
var controlGroups = []struct {
	name    string
	modules []string
	tokens  []string
}{
	{"Canny", []string{"canny"}, []string{"canny"}},
	{"Depth", []string{"depth", "depth_leres"}, []string{"depth"}},
	{"NormalMap", []string{"normal_map"}, []string{"normal"}},
	{"OpenPose", []string{"openpose"}, []string{"openpose", "pose"}},
	{"MLSD", []string{"mlsd"}, []string{"mlsd"}},
	{"Scribble", []string{"fake_scribble"}, []string{"scribble"}},
	{"SoftEdge", []string{"hed"}, []string{"hed", "softedge"}},
	{"Segmentation", []string{"segmentation"}, []string{"seg"}},
}

// ControlTypes groups the module whitelist and the known models per control
// type, mirroring the shape of the host extension's control_types listing.
func ControlTypes(modelNames []string) entities.ControlTypesResponse {
	types := map[string]entities.ControlType{
		"All": {
			ModuleList:    append([]string{"none"}, annotator.Modules()...),
			ModelList:     append([]string{"None"}, modelNames...),
			DefaultOption: "none",
			DefaultModel:  "None",
		},
	}

	for _, group := range controlGroups {
		control := entities.ControlType{
			ModuleList:    group.modules,
			ModelList:     []string{},
			DefaultOption: group.modules[0],
			DefaultModel:  "None",
		}
		for _, model := range modelNames {
			lower := strings.ToLower(model)
			for _, token := range group.tokens {
				if strings.Contains(lower, token) {
					control.ModelList = append(control.ModelList, model)
					break
				}
			}
		}
		if len(control.ModelList) > 0 {
			control.DefaultModel = control.ModelList[0]
		}
		types[group.name] = control
	}

	return entities.ControlTypesResponse{ControlTypes: types}
}
