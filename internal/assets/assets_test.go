package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RoomFit/internal/geom"
	"github.com/piwi3910/RoomFit/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	require.Len(t, c.ModelIDs(), 8)

	sofa, ok := c.FittingModel("Frenhaus burlap sofa")
	require.True(t, ok)
	assert.Equal(t, "sofa", sofa.Type.ID)
	assert.Equal(t, model.BoundingBox3D{Width: 1.8, Depth: 0.8, Height: 0.8}, sofa.BoundingBox)
	assert.Equal(t, 0.3, sofa.ClearanceAreaLength(model.FacingFront))
	assert.Equal(t, 0.0, sofa.ClearanceAreaLength(model.FacingBack))

	back := sofa.Type.Faces[1]
	assert.Equal(t, model.FacingBack, back.Facing)
	require.Len(t, back.Type.Relations, 1)
	assert.Same(t, c.Wall(), back.Type.Relations[0].Support)
	assert.Equal(t, 0.1, back.Type.Relations[0].Distance)
}

func TestDemoScenario(t *testing.T) {
	s, err := DemoScenario()
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.Equal(t, 5.0, s.Width)
	assert.Equal(t, 4.0, s.Depth)
	require.Len(t, s.Doors, 1)
	assert.Equal(t, geom.DirNegY, s.Doors[0].InwardDirection())
	require.Len(t, s.Windows, 4)
	for _, w := range s.Windows {
		assert.Equal(t, geom.DirPosY, w.InwardDirection())
	}

	c, err := DefaultCatalog()
	require.NoError(t, err)
	require.Len(t, s.Order, 8)
	for _, id := range s.Order {
		_, ok := c.FittingModel(id)
		assert.True(t, ok, id)
	}
}

func TestFittingDatabaseXMLIsCopy(t *testing.T) {
	a := FittingDatabaseXML()
	a[0] = 'x'
	assert.NotEqual(t, a[0], FittingDatabaseXML()[0])
}
